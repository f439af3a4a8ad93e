package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/flipfrog/box-api-chunk-upload-test/testfile"
)

type CheckCmd struct {
	Filename string `arg:"" type:"existingfile" help:"Generated test file to check"`
	Size     string `arg:"" optional:"" name:"M" help:"Expected size in mebibytes (any size if omitted)"`
	PartSize int64  `help:"Also list chunked upload parts of this many bytes, with sha1 digests"`
}

func (c *CheckCmd) Run(stdout io.Writer, stderr io.Writer) int {
	// Without a size, only the content is checked
	expected := int64(-1)
	if c.Size != "" {
		multiplier, err := testfile.ParseMultiplier(c.Size, true)
		if err != nil {
			fmt.Fprintf(stderr, "Couldn't parse size: %s\n", err)
			return 1
		}
		expected = max(multiplier, 0) * testfile.ChunkSize
	}
	if c.PartSize < 0 || c.PartSize > testfile.MaxPartSize {
		fmt.Fprintf(stderr, "part size must be between 1 and %d\n", testfile.MaxPartSize)
		return 1
	}

	v, err := testfile.Verify(c.Filename, testfile.FillByte, expected)
	if err != nil {
		fmt.Fprintf(stderr, "%s - Couldn't verify: %s\n", c.Filename, err)
		return 1
	}
	result := make(map[string]interface{})
	result["Filename"] = v.Filename
	result["Length"] = v.Length
	result["MD5"] = v.MD5
	if c.PartSize > 0 {
		manifest, err := testfile.FilePartManifest(c.Filename, c.PartSize)
		if err != nil {
			fmt.Fprintf(stderr, "%s - Couldn't split into parts: %s\n", c.Filename, err)
			return 1
		}
		result["SHA1"] = manifest.SHA1
		result["PartSize"] = manifest.PartSize
		result["Parts"] = manifest.Parts
	}
	rawjson, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Couldn't serialize json: %s\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(rawjson))
	return 0
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var cli CheckCmd
	parser, err := kong.New(&cli,
		kong.Name("checktestfile"),
		kong.Description("Check that a test file is entirely 'A' and optionally M mebibytes long"),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	if _, err = parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "checktestfile: %s\n", err)
		return 1
	}
	return cli.Run(stdout, stderr)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
