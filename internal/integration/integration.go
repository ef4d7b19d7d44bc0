// Package integration provides the embedded shell integration snippet.
package integration

import (
	"bytes"
	_ "embed"
	"fmt"
	"os/exec"
	"path/filepath"
	"text/template"
)

// ZshFzf contains the zsh wrapper that pipes found build outputs through fzf for removal.
//
//go:embed zsh-fzf.sh
var ZshFzf string

// Render renders the integration script with the path of the local zsh binary.
func Render() (string, error) {
	// First use LookPath to find zsh binary
	zsh, err := exec.LookPath("zsh")
	if err != nil {
		return "", fmt.Errorf("locating zsh: %w", err)
	}

	return render(filepath.ToSlash(zsh))
}

// render substitutes zsh as the interpreter path of the script.
func render(zsh string) (string, error) {
	// Then use text/template to substitute the zsh path
	tmpl, err := template.New("zsh-fzf").Parse(ZshFzf)
	if err != nil {
		return "", fmt.Errorf("parsing integration script: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"ZSH": zsh,
	}); err != nil {
		return "", fmt.Errorf("rendering integration script: %w", err)
	}

	return buf.String(), nil
}
