package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"ENTRY(main)",
	"GROUP(a.o AS_NEEDED(b.o -lc) =c.o)",
	"OUTPUT_FORMAT(a,b,c) OUTPUT_FORMAT(a,b)",
	"SECTIONS { .text : { *(.text .text.*) } .text : { *(.more) } }",
	"INCLUDE self.t",
	`"ENTRY"("x") ;;; EXTERN(a b`,
	"/* unterminated",
	`OUTPUT("unterminated`,
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.t файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".t" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, n int) []byte {
	if len(src) <= n {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:n]...)
}
