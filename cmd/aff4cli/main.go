// Command aff4cli is an interactive shell over an AFF4 volume: it opens
// (or creates) a zip-backed volume and an in-memory resolver, then lets
// the operator create image streams, push data into them, and read
// ranges back out.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/aff4image/pkg/aff4"
	"github.com/dd0wney/aff4image/pkg/aff4resolver"
	"github.com/dd0wney/aff4image/pkg/aff4volume"
	"github.com/dd0wney/aff4image/pkg/logging"
)

type shell struct {
	ctx       context.Context
	volume    *aff4volume.ZipVolume
	volumeURN string
	resolver  aff4resolver.Resolver
	streams   map[string]*aff4.Stream
	scanner   *bufio.Scanner
	logger    logging.Logger
}

func main() {
	volumePath := flag.String("volume", "./data/aff4.zip", "Path to the zip volume to open or create")
	flag.Parse()

	printBanner()

	fmt.Printf("Opening volume at %s...\n", *volumePath)
	volume, err := openOrCreateVolume(*volumePath)
	if err != nil {
		fmt.Printf("failed to open volume: %v\n", err)
		os.Exit(1)
	}

	sh := &shell{
		ctx:       context.Background(),
		volume:    volume,
		volumeURN: "aff4://" + *volumePath,
		resolver:  aff4resolver.NewMemResolver(),
		streams:   make(map[string]*aff4.Stream),
		scanner:   bufio.NewScanner(os.Stdin),
		logger:    logging.NewDefaultLogger(),
	}

	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	sh.run()
}

func openOrCreateVolume(path string) (*aff4volume.ZipVolume, error) {
	if _, err := os.Stat(path); err == nil {
		return aff4volume.OpenZipVolume(path)
	}
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return nil, err
	}
	return aff4volume.CreateZipVolume(path)
}

func dirOf(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return "."
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                                                           ║
║    █████╗ ███████╗███████╗██╗  ██╗                       ║
║   ██╔══██╗██╔════╝██╔════╝██║  ██║                       ║
║   ███████║█████╗  █████╗  ███████║                       ║
║   ██╔══██║██╔══╝  ██╔══╝  ╚════██║                       ║
║   ██║  ██║██║     ██║          ██║                       ║
║   ╚═╝  ╚═╝╚═╝     ╚═╝          ╚═╝                       ║
║                                                           ║
║            AFF4 Image Stream Shell v1.0                   ║
║                                                           ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}

func (sh *shell) run() {
	for {
		fmt.Print("aff4> ")

		if !sh.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(sh.scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			sh.closeAll()
			fmt.Println("goodbye")
			break
		}

		sh.executeCommand(input)
		fmt.Println()
	}
}

func (sh *shell) executeCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])

	switch command {
	case "help":
		sh.showHelp()

	case "create":
		if len(parts) < 2 {
			fmt.Println("Usage: create <urn> [chunk-size] [chunks-per-segment] [compression]")
			return
		}
		sh.createStream(parts[1:])

	case "open":
		if len(parts) < 2 {
			fmt.Println("Usage: open <urn>")
			return
		}
		sh.openStream(parts[1])

	case "write":
		if len(parts) < 3 {
			fmt.Println("Usage: write <urn> <text>")
			return
		}
		sh.writeStream(parts[1], strings.Join(parts[2:], " "))

	case "read":
		if len(parts) < 3 {
			fmt.Println("Usage: read <urn> <length> [offset]")
			return
		}
		sh.readStream(parts[1:])

	case "flush":
		if len(parts) < 2 {
			fmt.Println("Usage: flush <urn>")
			return
		}
		sh.flushStream(parts[1])

	case "stats":
		if len(parts) < 2 {
			fmt.Println("Usage: stats <urn>")
			return
		}
		sh.showStats(parts[1])

	case "list":
		sh.listStreams()

	case "clear":
		fmt.Print("\033[H\033[2J")

	default:
		fmt.Printf("unknown command: %s (type 'help' for available commands)\n", command)
	}
}

func (sh *shell) showHelp() {
	help := `
Available Commands:

Stream lifecycle:
  create <urn> [chunk-size] [chunks-per-segment] [compression]
                        Create a new image stream (compression: stored|zlib|snappy)
  open <urn>            Load an existing image stream's attributes
  list                  List streams opened this session
  flush <urn>           Flush buffered writes and sync attributes

Data:
  write <urn> <text>    Append text to a stream
  read <urn> <length> [offset]
                        Read length bytes (optionally seeking to offset first)
  stats <urn>           Show a stream's size, chunking, and compression

Other:
  clear                 Clear screen
  help                  Show this help
  exit/quit             Exit the shell

Examples:
  create aff4://disk1 32768 1024 zlib
  write aff4://disk1 hello world
  flush aff4://disk1
  read aff4://disk1 11
`
	fmt.Println(help)
}

func (sh *shell) createStream(args []string) {
	urn := args[0]
	cfg := aff4.Config{}

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("invalid chunk-size: %v\n", err)
			return
		}
		cfg.ChunkSize = n
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Printf("invalid chunks-per-segment: %v\n", err)
			return
		}
		cfg.ChunksPerSegment = n
	}
	if len(args) > 3 {
		method, ok := compressionByName(args[3])
		if !ok {
			fmt.Printf("unknown compression: %s (want stored|zlib|snappy)\n", args[3])
			return
		}
		cfg.Compression = method
	}

	s, err := aff4.NewImage(sh.ctx, urn, sh.volumeURN, sh.volume, sh.resolver, cfg,
		aff4.WithLogger(sh.logger))
	if err != nil {
		fmt.Printf("failed to create stream: %v\n", err)
		return
	}
	sh.streams[urn] = s
	fmt.Printf("created %s\n", urn)
}

func (sh *shell) openStream(urn string) {
	s, err := aff4.OpenImage(sh.ctx, urn, sh.volume, sh.resolver, aff4.WithLogger(sh.logger))
	if err != nil {
		fmt.Printf("failed to open stream: %v\n", err)
		return
	}
	sh.streams[urn] = s
	fmt.Printf("opened %s (%d bytes)\n", urn, s.Size())
}

func (sh *shell) writeStream(urn, text string) {
	s, ok := sh.streams[urn]
	if !ok {
		fmt.Printf("no such stream open: %s (use create/open first)\n", urn)
		return
	}
	n, err := s.Write(sh.ctx, []byte(text))
	if err != nil {
		fmt.Printf("write failed: %v\n", err)
		return
	}
	fmt.Printf("wrote %d bytes\n", n)
}

func (sh *shell) readStream(args []string) {
	urn := args[0]
	s, ok := sh.streams[urn]
	if !ok {
		fmt.Printf("no such stream open: %s (use create/open first)\n", urn)
		return
	}

	length, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Printf("invalid length: %v\n", err)
		return
	}

	if len(args) > 2 {
		offset, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Printf("invalid offset: %v\n", err)
			return
		}
		if _, err := s.Seek(offset, 0); err != nil {
			fmt.Printf("seek failed: %v\n", err)
			return
		}
	}

	data, err := s.Read(sh.ctx, length)
	if err != nil {
		fmt.Printf("read failed: %v\n", err)
		return
	}
	fmt.Printf("%q\n", data)
}

func (sh *shell) flushStream(urn string) {
	s, ok := sh.streams[urn]
	if !ok {
		fmt.Printf("no such stream open: %s\n", urn)
		return
	}
	if err := s.Flush(sh.ctx); err != nil {
		fmt.Printf("flush failed: %v\n", err)
		return
	}
	fmt.Println("flushed")
}

func (sh *shell) showStats(urn string) {
	s, ok := sh.streams[urn]
	if !ok {
		fmt.Printf("no such stream open: %s\n", urn)
		return
	}
	st := s.Stats()
	fmt.Println("Stream Statistics:")
	fmt.Println("------------------")
	fmt.Printf("  Size:              %d\n", st.Size)
	fmt.Printf("  Chunk size:        %d\n", st.ChunkSize)
	fmt.Printf("  Chunks per segment: %d\n", st.ChunksPerSegment)
	fmt.Printf("  Bevy number:       %d\n", st.BevyNumber)
	fmt.Printf("  Chunks in bevy:    %d\n", st.ChunkCountInBevy)
	fmt.Printf("  Compression:       %s\n", st.Compression)
	fmt.Printf("  Dirty:             %v\n", st.Dirty)
}

func (sh *shell) listStreams() {
	if len(sh.streams) == 0 {
		fmt.Println("no streams open")
		return
	}
	for urn := range sh.streams {
		fmt.Println(" ", urn)
	}
}

func (sh *shell) closeAll() {
	for urn, s := range sh.streams {
		if err := s.Close(); err != nil {
			fmt.Printf("error flushing %s on exit: %v\n", urn, err)
		}
	}
	sh.volume.Close()
}

func compressionByName(name string) (aff4.Compression, bool) {
	switch strings.ToLower(name) {
	case "stored":
		return aff4.CompressionStored, true
	case "zlib":
		return aff4.CompressionZlib, true
	case "snappy":
		return aff4.CompressionSnappy, true
	default:
		return aff4.CompressionUnknown, false
	}
}
