package fontface

import (
	"log/slog"
	"os"

	"github.com/flopp/go-findfont"

	"github.com/gogpu/fontatlas"
)

// Resolve loads a font given either a file path or the name of an
// installed system font, such as "DejaVuSans" or "arial.ttf".
//
// An existing file always wins over a system font of the same name.
func Resolve(nameOrPath string, opts ...Option) (*Face, error) {
	if st, err := os.Stat(nameOrPath); err == nil && !st.IsDir() {
		return Load(nameOrPath, opts...)
	}
	path, err := findfont.Find(nameOrPath)
	if err != nil {
		return nil, &LoadError{Kind: ErrOpenFailed, Path: nameOrPath, Err: err}
	}
	fontatlas.Logger().Debug("fontface: system font resolved",
		slog.String("name", nameOrPath),
		slog.String("path", path))
	return Load(path, opts...)
}
