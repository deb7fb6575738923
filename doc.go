// Package magickit determines the content type of files and byte streams
// from their leading bytes, in the manner of the Unix file command. Rules
// come from magic(5) style text files or from a built-in rule set covering
// common image, audio, video, archive, document and executable formats.
//
// # Basic Usage
//
//	detector := magickit.New()
//
//	info, err := detector.FindFileMatch("logo.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if info == nil {
//		fmt.Println("unknown content")
//	} else {
//		fmt.Println(info.Name, info.MimeType, info.Message)
//	}
//
// FindMatch classifies bytes already in memory and FindReaderMatch reads
// the leading window from any io.Reader. All three return nil when nothing
// matched, which is a normal outcome rather than an error.
//
// # Rule Files
//
// Custom rules load from a file, a directory of files, or any reader:
//
//	detector, err := magickit.NewFromFile("/etc/magic")
//	detector, err := magickit.NewFromDirectory("./rules",
//		magickit.WithFilePattern("*.magic"))
//	detector, err := magickit.NewFromReader(strings.NewReader(rules))
//
// Directory loading takes files in name order, so priority between files
// follows their naming. The rule format itself is documented in the magic
// subpackage.
//
// Malformed rule lines are skipped, not fatal. Register a callback to see
// them:
//
//	magickit.WithErrorCallback(func(err *magic.ParseError) {
//		log.Printf("bad rule: %v", err)
//	})
//
// # Configuration
//
// The environment can drive construction for services that prefer config
// over code:
//
//	cfg, err := magickit.GetConfig()
//	detector, err := magickit.NewFromConfig(cfg)
//
// Recognized variables are BEAVER_MAGICKIT_MAGIC_PATH,
// BEAVER_MAGICKIT_FILE_PATTERN, BEAVER_MAGICKIT_READ_SIZE,
// BEAVER_MAGICKIT_CACHE_ENABLED, BEAVER_MAGICKIT_CACHE_TTL_SECONDS and
// BEAVER_MAGICKIT_STRENGTH_ORDERING.
//
// # Caching
//
// Compiling a large rule file is not free. A cache keyed by rule-source
// digest skips recompilation when the same text loads again:
//
//	detector, err := magickit.NewFromFile("/etc/magic",
//		magickit.WithCache(magickit.NewMemoryCache()),
//		magickit.WithCacheTTL(10*time.Minute))
//
// # Watching
//
// File- and directory-backed detectors can reload themselves when the
// rules change on disk:
//
//	watcher, err := detector.Watch(func(err error) {
//		if err != nil {
//			log.Printf("reload failed: %v", err)
//		}
//	})
//	defer watcher.Close()
//
// A failed reload keeps the previous rule set, so a half-written rule file
// never takes a running detector down.
//
// # Extension Fallback
//
// When content inspection draws a blank, FindExtensionMatch maps a file
// name extension to a coarse type as a last resort.
package magickit
