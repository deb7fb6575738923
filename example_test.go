package magickit_test

import (
	"fmt"
	"strings"

	"github.com/gobeaver/magickit"
)

func Example() {
	detector := magickit.New()

	header := []byte("\x89PNG\x0d\x0a\x1a\x0a\x00\x00\x00\x0dIHDR" +
		"\x00\x00\x02\x80\x00\x00\x01\xe0")
	info := detector.FindMatch(header)
	fmt.Println(info.Name)
	fmt.Println(info.MimeType)
	fmt.Println(info.Message)
	// Output:
	// PNG
	// image/png
	// PNG image data, 640 x 480
}

func ExampleNewFromReader() {
	rules := "0\tstring\tfLaC\tFLAC audio bitstream data\n" +
		"!:mime\taudio/x-flac\n"

	detector, err := magickit.NewFromReader(strings.NewReader(rules))
	if err != nil {
		fmt.Println(err)
		return
	}

	info := detector.FindMatch([]byte("fLaC\x00\x00\x00\x22"))
	fmt.Println(info)
	// Output:
	// FLAC audio bitstream data
}

func ExampleFindExtensionMatch() {
	// Content inspection came up empty; fall back to the file name.
	info := magickit.FindExtensionMatch("notes.md")
	fmt.Println(info.Name, info.MimeType)
	// Output:
	// Markdown text/markdown
}

func ExampleDetector_FindMatch_unknown() {
	detector := magickit.New()

	if info := detector.FindMatch([]byte("nothing recognizable here")); info == nil {
		fmt.Println("unknown content")
	}
	// Output:
	// unknown content
}
