package fuzztests

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path"
	"strings"
	"testing"
)

const (
	repoRoot     = "../.."
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

// addCorpusSeeds seeds f with the .sb files under testdata, the ```sable
// blocks of the README and a few hand-picked inputs.
func addCorpusSeeds(f *testing.F) {
	for _, s := range testdataSeeds(".sb") {
		f.Add(s)
	}
	for _, s := range readmeSeeds() {
		f.Add(s)
	}
	for _, s := range []string{
		"",
		"fn main(): i32 { return 0; }\n",
		"/* unterminated /* nested */",
		"\"abc\nlet x = '\\q';",
		"\xff\xfelet",
	} {
		f.Add([]byte(s))
	}
}

func testdataSeeds(ext string) [][]byte {
	root := os.DirFS(repoRoot)
	var out [][]byte
	_ = fs.WalkDir(root, "testdata", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ext {
			return nil
		}
		if src, err := fs.ReadFile(root, p); err == nil {
			out = append(out, clampSeed(src))
		}
		return nil
	})
	return out
}

func readmeSeeds() [][]byte {
	data, err := fs.ReadFile(os.DirFS(repoRoot), "README.md")
	if err != nil {
		return nil
	}
	var (
		out   [][]byte
		block []string
		open  bool
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		fence := strings.TrimSpace(line)
		switch {
		case !open && strings.HasPrefix(fence, "```sable"):
			open, block = true, block[:0]
		case open && strings.HasPrefix(fence, "```"):
			open = false
			if len(block) > 0 {
				out = append(out, clampSeed([]byte(strings.Join(block, "\n"))))
			}
		case open:
			block = append(block, line)
		}
	}
	return out
}

func clampSeed(src []byte) []byte {
	return bytes.Clone(src[:min(len(src), maxSeedBytes)])
}
