package storage

import "strings"

// ArtifactForbidden lists the characters replaced in artifact names.
const ArtifactForbidden = `\/:*?"<>| `

// FileNameForbidden lists the characters replaced when renaming asset files.
// Unlike ArtifactForbidden it keeps spaces.
const FileNameForbidden = `<>:"/\|?*`

// SanitizeName maps a track name to the base name used for its artifacts by
// replacing every character in ArtifactForbidden with an underscore.
// SanitizeName(SanitizeName(s)) == SanitizeName(s) for every s.
func SanitizeName(name string) string {
	return replaceAny(name, ArtifactForbidden)
}

// SanitizeFileName replaces the characters in FileNameForbidden with underscores.
func SanitizeFileName(name string) string {
	return replaceAny(name, FileNameForbidden)
}

func replaceAny(s, forbidden string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return '_'
		}
		return r
	}, s)
}
