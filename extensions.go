package magickit

import (
	"path/filepath"
	"strings"
)

// extensionType maps a file extension to a best-guess classification used
// when content-based matching yields nothing.
type extensionType struct {
	name     string
	mimeType string
}

// Common file extensions to content types mapping
var extensionTypes = map[string]extensionType{
	".txt":   {"Text", "text/plain"},
	".html":  {"HTML", "text/html"},
	".htm":   {"HTML", "text/html"},
	".css":   {"CSS", "text/css"},
	".js":    {"JavaScript", "text/javascript"},
	".json":  {"JSON", "application/json"},
	".xml":   {"XML", "application/xml"},
	".csv":   {"CSV", "text/csv"},
	".md":    {"Markdown", "text/markdown"},
	".jpg":   {"JPEG", "image/jpeg"},
	".jpeg":  {"JPEG", "image/jpeg"},
	".png":   {"PNG", "image/png"},
	".gif":   {"GIF", "image/gif"},
	".svg":   {"SVG", "image/svg+xml"},
	".webp":  {"WebP", "image/webp"},
	".bmp":   {"BMP", "image/bmp"},
	".tif":   {"TIFF", "image/tiff"},
	".tiff":  {"TIFF", "image/tiff"},
	".ico":   {"icon", "image/x-icon"},
	".mp3":   {"MP3", "audio/mpeg"},
	".flac":  {"FLAC", "audio/flac"},
	".ogg":   {"Ogg", "audio/ogg"},
	".wav":   {"WAVE", "audio/wav"},
	".mid":   {"MIDI", "audio/midi"},
	".midi":  {"MIDI", "audio/midi"},
	".mp4":   {"MP4", "video/mp4"},
	".mpeg":  {"MPEG", "video/mpeg"},
	".mpg":   {"MPEG", "video/mpeg"},
	".webm":  {"WebM", "video/webm"},
	".mkv":   {"Matroska", "video/x-matroska"},
	".mov":   {"QuickTime", "video/quicktime"},
	".avi":   {"AVI", "video/x-msvideo"},
	".flv":   {"FLV", "video/x-flv"},
	".pdf":   {"PDF", "application/pdf"},
	".zip":   {"Zip", "application/zip"},
	".gz":    {"gzip", "application/gzip"},
	".tar":   {"tar", "application/x-tar"},
	".rar":   {"RAR", "application/x-rar-compressed"},
	".7z":    {"7-zip", "application/x-7z-compressed"},
	".bz2":   {"bzip2", "application/x-bzip2"},
	".xz":    {"XZ", "application/x-xz"},
	".doc":   {"Word", "application/msword"},
	".docx":  {"Word", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".xls":   {"Excel", "application/vnd.ms-excel"},
	".xlsx":  {"Excel", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	".ppt":   {"PowerPoint", "application/vnd.ms-powerpoint"},
	".pptx":  {"PowerPoint", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	".woff":  {"WOFF", "font/woff"},
	".woff2": {"WOFF2", "font/woff2"},
	".ttf":   {"TrueType", "font/ttf"},
	".otf":   {"OpenType", "font/otf"},
	".exe":   {"PE", "application/x-msdownload"},
}

// FindExtensionMatch classifies a file by its extension alone. It is the
// fallback for when content-based matching produced nothing; the result
// carries no description text. Returns nil for unknown extensions.
func FindExtensionMatch(filename string) *ContentInfo {
	ext := strings.ToLower(filepath.Ext(filename))
	et, ok := extensionTypes[ext]
	if !ok {
		return nil
	}
	return &ContentInfo{Name: et.name, MimeType: et.mimeType}
}

// MimeTypeForExtension returns the MIME type guessed from a file extension,
// or empty string if the extension is not recognized.
func MimeTypeForExtension(ext string) string {
	return extensionTypes[strings.ToLower(ext)].mimeType
}
