// Package validation provides input validation utilities to prevent security
// vulnerabilities such as command injection, path traversal, and other
// input-based attacks.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput        = errors.New("input cannot be empty")
	ErrInvalidModelName  = errors.New("invalid model name")
	ErrInvalidImageRef   = errors.New("invalid image reference")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidVolumeSpec = errors.New("invalid volume specification")
	ErrInvalidPath       = errors.New("invalid path")
	ErrPathTraversal     = errors.New("path traversal detected")
	ErrCommandInjection  = errors.New("potential command injection detected")
)

// Compiled regex patterns for validation (compiled once for performance).
var (
	// modelNameRegex matches Ollama model references: a name with an
	// optional namespace path and an optional :tag.
	// Examples: "llama3.2", "qwen2.5-coder:7b", "hf.co/bartowski/Llama-3.2-3B-GGUF:Q4_K_M"
	modelNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*(/[a-zA-Z0-9][a-zA-Z0-9._-]*)*(:[a-zA-Z0-9._-]+)?$`)

	// imageRefRegex matches container image references: an optional
	// registry, a repository path, and an optional :tag or @sha256 digest.
	// Examples: "redis:7", "ghcr.io/open-webui/open-webui:main"
	imageRefRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*(:[0-9]+)?(/[a-z0-9][a-z0-9._-]*)*(:[a-zA-Z0-9._-]+)?(@sha256:[a-f0-9]{64})?$`)

	// dockerNameRegex matches the container and volume names the docker
	// daemon accepts.
	// Examples: "open-webui", "open-webui-data", "ollama_cache"
	dockerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

	// volumeSpecRegex matches named-volume mount specifications: a volume
	// name, a colon, an absolute container path, and an optional mode.
	// Examples: "open-webui:/app/backend/data", "models:/data:ro"
	volumeSpecRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*:(/[a-zA-Z0-9._-]+)+(:(ro|rw))?$`)

	// shellMetaChars contains shell metacharacters that could enable injection
	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r", "\\"}
)

// ValidateModelName validates an Ollama model reference. The value ends
// up as an argument to ollama pull and ollama list, so it must never
// carry shell metacharacters.
func ValidateModelName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > 256 {
		return fmt.Errorf("%w: name too long (max 256 characters)", ErrInvalidModelName)
	}

	if !modelNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidModelName, name)
	}

	// Check for shell metacharacters (defense in depth)
	if containsShellMeta(name) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, name)
	}

	return nil
}

// ValidateImageRef validates a container image reference passed to
// docker run.
func ValidateImageRef(ref string) error {
	if ref == "" {
		return ErrEmptyInput
	}

	if len(ref) > 512 {
		return fmt.Errorf("%w: reference too long", ErrInvalidImageRef)
	}

	if !imageRefRegex.MatchString(ref) {
		return fmt.Errorf("%w: %q is not a valid image reference", ErrInvalidImageRef, ref)
	}

	if containsShellMeta(ref) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, ref)
	}

	return nil
}

// ValidateDockerName validates a container or volume name.
func ValidateDockerName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > 128 {
		return fmt.Errorf("%w: name too long", ErrInvalidName)
	}

	if !dockerNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidName, name)
	}

	if containsShellMeta(name) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, name)
	}

	return nil
}

// ValidateVolumeSpec validates a named-volume mount passed to docker
// run via -v.
func ValidateVolumeSpec(spec string) error {
	if spec == "" {
		return ErrEmptyInput
	}

	if len(spec) > 256 {
		return fmt.Errorf("%w: specification too long", ErrInvalidVolumeSpec)
	}

	if !volumeSpecRegex.MatchString(spec) {
		return fmt.Errorf("%w: %q must be name:/container/path with an optional :ro or :rw mode", ErrInvalidVolumeSpec, spec)
	}

	if containsShellMeta(spec) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, spec)
	}

	return nil
}

// ValidateConfigPath validates a user-supplied configuration file path.
// An empty path is allowed; the loader falls back to its defaults.
func ValidateConfigPath(path string) error {
	if path == "" {
		return nil
	}

	if err := ValidatePath(path); err != nil {
		return err
	}

	if containsShellMeta(path) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, path)
	}

	return nil
}

// ValidatePath validates a file path and prevents path traversal attacks.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: path contains null byte", ErrInvalidPath)
	}

	if strings.ContainsAny(path, "\n\r") {
		return fmt.Errorf("%w: path contains newline", ErrInvalidPath)
	}

	if containsPathTraversal(path) {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrPathTraversal, path)
	}

	return nil
}

// containsShellMeta checks if a string contains shell metacharacters.
func containsShellMeta(s string) bool {
	for _, char := range shellMetaChars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}

// containsPathTraversal checks for common path traversal patterns.
func containsPathTraversal(path string) bool {
	// Normalize the path to catch encoded traversal attempts
	normalized := filepath.Clean(path)

	segments := strings.Split(normalized, string(filepath.Separator))
	for _, seg := range segments {
		if seg == ".." {
			return true
		}
	}

	// Check for URL-encoded traversal
	if strings.Contains(path, "%2e%2e") || strings.Contains(path, "%2E%2E") {
		return true
	}

	return false
}
