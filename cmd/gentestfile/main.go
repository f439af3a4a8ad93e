package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/flipfrog/box-api-chunk-upload-test/testfile"
)

const (
	AppVersion = "0.3.0"
)

type GenerateCmd struct {
	Size        string           `arg:"" optional:"" name:"M" help:"Size of the file in mebibytes"`
	Extra       []string         `arg:"" optional:"" hidden:"" help:"Ignored"`
	Output      string           `type:"path" short:"o" help:"File to write (its folder must exist). Default ./data/test.dat"`
	Config      string           `type:"existingfile" short:"c" help:"TOML config with defaults for output, fill, chunk_size, strict and preallocate"`
	Strict      bool             `negatable:"" help:"Reject a size which isn't entirely an integer instead of reading it as 0"`
	Preallocate bool             `negatable:"" help:"Reserve the disk space before writing (linux only)"`
	Verify      bool             `help:"Read the file back after writing and check every byte"`
	Json        bool             `help:"Print a json summary of the file on stdout"`
	PartSize    int64            `help:"Also list chunked upload parts of this many bytes, with sha1 digests, in the json summary"`
	Verbose     bool             `short:"v" help:"Log progress to stderr"`
	Version     kong.VersionFlag `help:"Show version information"`
}

// Resolve config file and flags into generator settings. Flags given on the
// command line win over the config file, which wins over the defaults.
func (c *GenerateCmd) config(given map[string]bool) (testfile.Config, error) {
	config := testfile.DefaultConfig()
	if c.Config != "" {
		var err error
		config, err = testfile.LoadConfig(c.Config)
		if err != nil {
			return config, err
		}
		log.Printf("Loaded config %s\n", c.Config)
	}
	if c.Output != "" {
		config.Output = c.Output
	}
	if given["strict"] {
		config.Strict = c.Strict
	}
	if given["preallocate"] {
		config.Preallocate = c.Preallocate
	}
	return config, nil
}

func (c *GenerateCmd) Run(program string, given map[string]bool, stdout io.Writer, stderr io.Writer) int {
	if c.Verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	if len(c.Extra) > 0 {
		log.Printf("Ignoring extra arguments %q\n", c.Extra)
	}
	config, err := c.config(given)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %s\n", err)
		return 1
	}
	if c.PartSize < 0 || c.PartSize > testfile.MaxPartSize {
		fmt.Fprintf(stderr, "part size must be between 1 and %d\n", testfile.MaxPartSize)
		return 1
	}
	multiplier, err := testfile.ParseMultiplier(c.Size, config.Strict)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		fmt.Fprintf(stderr, "USAGE: %s <M bytes>\n", program)
		return 1
	}

	opts := config.Options(multiplier)
	opts.Digest = c.Json || c.Verify
	// Explains the open failure that follows, when asked for detail
	if c.Verbose {
		if err = testfile.RequireDir(opts.Output); err != nil {
			log.Printf("%s\n", err)
		}
	}
	result, err := testfile.Generate(opts)
	if err != nil {
		return reportFailure(err, stderr)
	}

	summary := make(map[string]interface{})
	summary["Filename"] = result.Filename
	summary["Multiplier"] = result.Multiplier
	summary["ChunkSize"] = result.ChunkSize
	summary["Length"] = result.Length
	summary["MD5"] = result.MD5

	if c.Verify {
		v, err := testfile.Verify(opts.Output, opts.Fill, result.Length)
		if err == nil && v.MD5 != result.MD5 {
			err = fmt.Errorf("md5 %s doesn't match written %s", v.MD5, result.MD5)
		}
		if err != nil {
			fmt.Fprintf(stderr, "verify error: %s\n", err)
			return 1
		}
		log.Printf("Verified %d bytes in %s\n", v.Length, v.Filename)
		summary["Verified"] = true
	}
	if c.PartSize > 0 {
		manifest, err := testfile.FilePartManifest(opts.Output, c.PartSize)
		if err != nil {
			fmt.Fprintf(stderr, "part error: %s\n", err)
			return 1
		}
		log.Printf("Split %s into %d parts of %d bytes\n", opts.Output, len(manifest.Parts), c.PartSize)
		summary["SHA1"] = manifest.SHA1
		summary["PartSize"] = manifest.PartSize
		summary["Parts"] = manifest.Parts
	}
	if c.Json {
		if err = PrintJson(stdout, summary); err != nil {
			fmt.Fprintf(stderr, "Couldn't serialize json: %s\n", err)
			return 1
		}
	}
	return 0
}

// Print the one line diagnostic for a failed generate and pick the exit code
func reportFailure(err error, stderr io.Writer) int {
	var openErr *testfile.OpenError
	var writeErr *testfile.WriteError
	switch {
	case errors.As(err, &openErr):
		log.Printf("%s\n", err)
		fmt.Fprintln(stderr, "file open error.")
		return ExitCode(err, 1)
	case errors.As(err, &writeErr):
		log.Printf("%s\n", err)
		fmt.Fprintln(stderr, "file write error.")
		return ExitCode(err, ExitIOError)
	default:
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	program := "gentestfile"
	if len(args) > 0 {
		program = args[0]
		args = args[1:]
	}
	var cli GenerateCmd
	parser, err := kong.New(&cli,
		kong.Name("gentestfile"),
		kong.Description("Generate a test data file of M mebibytes, every byte 'A'"),
		kong.Writers(stdout, stderr),
		kong.Vars{
			"version": AppVersion,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	args, hasSize := positionalSize(args)
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", program, err)
		fmt.Fprintf(stderr, "USAGE: %s <M bytes>\n", program)
		return 1
	}
	// Only a missing token is a usage error; an empty or junk size scans as 0
	if !hasSize {
		fmt.Fprintf(stderr, "USAGE: %s <M bytes>\n", program)
		return 1
	}
	return cli.Run(program, flagsGiven(ctx), stdout, stderr)
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
