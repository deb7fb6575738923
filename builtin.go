package magickit

// builtinRules is the rule set compiled into the library. It covers the
// formats most callers care about out of the box; load your own rules with
// NewFromFile or NewFromDirectory when you need more.
const builtinRules = `
# ------------------------------------------------------------------
# Images
# ------------------------------------------------------------------

0	string	\x89PNG\x0d\x0a\x1a\x0a	PNG image data
!:mime	image/png
>16	belong	x	\b, %d x
>20	belong	x	%d

0	beshort	0xffd8	JPEG image data
!:mime	image/jpeg
>6	string	JFIF	\b, JFIF standard
>6	string	Exif	\b, Exif standard

0	string	GIF8	GIF image data
!:mime	image/gif
>4	string	7a	\b, version 87a
>4	string	9a	\b, version 89a
>6	leshort	x	\b, %d x
>8	leshort	x	%d

0	string	BM	PC bitmap
!:mime	image/bmp
>14	lelong	40	\b, Windows 3.x format
>14	lelong	124	\b, Windows 98/2000 and newer format

0	string	II\x2a\x00	TIFF image data, little-endian
!:mime	image/tiff
0	string	MM\x00\x2a	TIFF image data, big-endian
!:mime	image/tiff

0	belong	0x00000100	MS Windows icon resource
!:mime	image/x-icon
>4	leshort	x	\b, %d icons

# ------------------------------------------------------------------
# RIFF containers
# ------------------------------------------------------------------

0	string	RIFF	RIFF data
>8	string	WAVE	\b, WAVE audio
!:mime	audio/x-wav
>>22	leshort	1	\b, mono
>>22	leshort	2	\b, stereo
>>24	lelong	x	\b, %d Hz
>8	string	AVI\x20	\b, AVI video
!:mime	video/x-msvideo
>8	string	WEBP	\b, Web/P image
!:mime	image/webp

# ------------------------------------------------------------------
# ISO base media
# ------------------------------------------------------------------

4	string	ftyp	ISO Media
>8	string	isom	\b, MP4 Base Media v1
!:mime	video/mp4
>8	string	mp41	\b, MP4 v1
!:mime	video/mp4
>8	string	mp42	\b, MP4 v2
!:mime	video/mp4
>8	string	M4A\x20	\b, Apple iTunes Audio
!:mime	audio/x-m4a
>8	string	qt\x20\x20	\b, Apple QuickTime movie
!:mime	video/quicktime
>8	string	heic	\b, HEIF image
!:mime	image/heic

# ------------------------------------------------------------------
# Documents and archives
# ------------------------------------------------------------------

0	string	%PDF-	PDF document
!:mime	application/pdf
>5	regex	[0-9]\.[0-9]	\b, version %s

0	string	PK\x03\x04	Zip archive data
!:mime	application/zip
>30	search/2048	word/	\b, Microsoft Word 2007+
!:mime	application/vnd.openxmlformats-officedocument.wordprocessingml.document
>30	search/2048	xl/	\b, Microsoft Excel 2007+
!:mime	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
>30	search/2048	ppt/	\b, Microsoft PowerPoint 2007+
!:mime	application/vnd.openxmlformats-officedocument.presentationml.presentation
0	string	PK\x05\x06	Zip archive data (empty)
!:mime	application/zip

0	string	\x1f\x8b	gzip compressed data
!:mime	application/gzip
>3	byte	&8	\b, has original file name

257	string	ustar	POSIX tar archive
!:mime	application/x-tar

0	string	Rar!\x1a\x07	RAR archive data
!:mime	application/x-rar

0	string	7z\xbc\xaf\x27\x1c	7-zip archive data
!:mime	application/x-7z-compressed

0	string	BZh	bzip2 compressed data
!:mime	application/x-bzip2
>3	byte	>47	\b, block size = %c00k

0	string	\xfd7zXZ\x00	XZ compressed data
!:mime	application/x-xz

0	string	SQLite\x20format\x203	SQLite 3.x database
!:mime	application/vnd.sqlite3

# ------------------------------------------------------------------
# Audio and video
# ------------------------------------------------------------------

0	string	ID3	Audio file with ID3 version 2
>3	byte	x	\b.%d
>(6.I+10)	beshort&0xfffe	0xfffa	\b, MP3 encoding
!:mime	audio/mpeg

0	beshort&0xfffe	0xfffa	MPEG ADTS, layer III
!:mime	audio/mpeg

0	string	fLaC	FLAC audio bitstream data
!:mime	audio/x-flac

0	string	OggS	Ogg data
>28	string	\x01vorbis	\b, Vorbis audio
!:mime	audio/ogg
>28	string	OpusHead	\b, Opus audio
!:mime	audio/opus

0	string	MThd	Standard MIDI data
!:mime	audio/midi
>8	beshort	x	\b (format %d)
>10	beshort	x	\b using %d tracks

0	belong	0x1a45dfa3	EBML file
>4	search/64	webm	\b, WebM video
!:mime	video/webm
>4	search/64	matroska	\b, Matroska video
!:mime	video/x-matroska

0	string	FLV\x01	Macromedia Flash Video
!:mime	video/x-flv

# ------------------------------------------------------------------
# Executables
# ------------------------------------------------------------------

0	string	\x7fELF	ELF
!:mime	application/x-executable
>4	byte	1	\b 32-bit
>4	byte	2	\b 64-bit
>5	byte	1	\b LSB
>5	byte	2	\b MSB
>16	leshort	1	\b relocatable
>16	leshort	2	\b executable
>16	leshort	3	\b shared object

0	string	MZ	MS-DOS executable
!:mime	application/x-dosexec
>(0x3c.l)	string	PE\x00\x00	\b, PE for MS Windows

0	belong	0xfeedface	Mach-O 32-bit executable
0	belong	0xfeedfacf	Mach-O 64-bit executable

0	belong	0xcafebabe	Java class or Mach-O fat binary
>4	belong	>30	\b, compiled Java class data

# ------------------------------------------------------------------
# Fonts
# ------------------------------------------------------------------

0	string	wOFF	Web Open Font Format
!:mime	font/woff
0	string	wOF2	Web Open Font Format (Version 2)
!:mime	font/woff2
0	string	OTTO	OpenType font data
!:mime	font/otf
0	belong	0x00010000	TrueType font data
!:mime	font/ttf

# ------------------------------------------------------------------
# Text. Weak rules, ranked below everything above.
# ------------------------------------------------------------------

0	string	\xef\xbb\xbf	UTF-8 Unicode (with BOM) text
!:mime	text/plain
!:strength	- 10

0	string	\<?xml	XML document text
!:mime	text/xml
>5	search/64	\<svg	\b (SVG image)
!:mime	image/svg+xml

0	search/256	\<html	HTML document text
!:mime	text/html
!:strength	- 10
0	search/256	\<!DOCTYPE\x20html	HTML document text
!:mime	text/html
!:strength	- 10

0	regex	^\\{[\\s]*"	JSON text data
!:mime	application/json
!:strength	- 10

0	string	#!/	script text executable
!:mime	text/x-script
>3	string	bin/sh	\b (sh)
>3	string	bin/bash	\b (bash)
>3	string	usr/bin/env	\b (env)
`
