package pipeline

import (
	"net/url"
	"regexp"
	"strings"
)

const untitledName = "untitled"

var (
	// Characters unsafe in object keys and filesystems, plus C0 controls.
	unsafeCharsPattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

	multiSpacePattern      = regexp.MustCompile(`\s+`)
	multiUnderscorePattern = regexp.MustCompile(`_+`)
)

// ToTranscriptName maps an audio filename to its transcript filename:
// URL-decode, strip the extension, sanitize the base and append ".txt".
// A dot-file without a real base, or a base that sanitizes away entirely,
// becomes "untitled".
func ToTranscriptName(audioFilename string) (string, error) {
	if audioFilename == "" {
		return "", &InvalidInputError{Reason: "filename must be a non-empty string"}
	}

	decoded := audioFilename
	if unescaped, err := url.PathUnescape(audioFilename); err == nil {
		decoded = unescaped
	}

	base, _ := splitExt(decoded)
	if strings.HasPrefix(decoded, ".") && base == decoded {
		// A bare dot-file like ".mp3" splits into (".mp3", "").
		base = untitledName
	} else if base == "" {
		base = untitledName
	}

	return sanitizeFilename(base) + ".txt", nil
}

// splitExt splits a filename at its last dot, treating leading dots as part
// of the base rather than the start of an extension.
func splitExt(name string) (base, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name, ""
	}
	for i := 0; i < dot; i++ {
		if name[i] != '.' {
			return name[:dot], name[dot:]
		}
	}
	return name, ""
}

func sanitizeFilename(name string) string {
	s := unsafeCharsPattern.ReplaceAllString(name, "")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	s = multiUnderscorePattern.ReplaceAllString(s, "_")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return untitledName
	}
	return s
}

// BaseFilename returns the final path segment of an object key, tolerating
// both "/" and "\" as separators.
func BaseFilename(path string) (string, error) {
	if path == "" {
		return "", &InvalidInputError{Reason: "path cannot be empty"}
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:], nil
	}
	return path, nil
}

// PreserveDirectory places a new filename in the directory of the original
// key. Keys without a directory component pass the filename through.
func PreserveDirectory(originalKey, newFilename string) string {
	if originalKey == "" {
		return newFilename
	}
	i := strings.LastIndexByte(originalKey, '/')
	if i <= 0 {
		return newFilename
	}
	return originalKey[:i] + "/" + newFilename
}

// IsValidAudioName reports whether a filename carries an eligible audio
// extension, case-insensitively.
func IsValidAudioName(filename string) bool {
	if filename == "" {
		return false
	}
	ext := FileExtension(filename)
	if ext == "" {
		return false
	}
	return supportedAudioFormats[strings.ToLower(ext)]
}

// NormalizedExtension returns the lower-cased extension of a filename
// including the dot, or "" when there is none.
func NormalizedExtension(filename string) string {
	return strings.ToLower(FileExtension(filename))
}
