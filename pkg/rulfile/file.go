package rulfile

import (
	"os"
	"runtime"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/rules"
)

// lineSeparator is the platform line terminator used when writing
var lineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// ReadFile reads and parses a .RUL file. IO failures are fatal and
// returned as typed errors; per-line parse failures only affect ok.
func ReadFile(path string) (*rules.Collection, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrapf(err, errors.ErrFileNotFound,
				"rule file not found: %s", path)
		}
		return nil, false, errors.Wrapf(err, errors.ErrCodecIO,
			"failed to read rule file %s", path)
	}

	coll, ok := Parse(string(data))
	log.Info().Str("path", path).Int("rules", coll.Len()).Bool("ok", ok).
		Msg("Read rule file")
	return coll, ok, nil
}

// ReadLegacyFile reads a block-format rule file with the same error
// contract as ReadFile
func ReadLegacyFile(path string) (*rules.Collection, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrapf(err, errors.ErrFileNotFound,
				"rule file not found: %s", path)
		}
		return nil, false, errors.Wrapf(err, errors.ErrCodecIO,
			"failed to read rule file %s", path)
	}

	coll, ok := ParseLegacy(string(data))
	log.Info().Str("path", path).Int("rules", coll.Len()).Bool("ok", ok).
		Msg("Read legacy rule file")
	return coll, ok, nil
}

// WriteFile serializes the collection and writes it to path
func WriteFile(path string, c *rules.Collection) error {
	content := MarshalCollection(c)
	if content != "" {
		content += lineSeparator
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCodecIO,
			"failed to write rule file %s", path)
	}

	log.Info().Str("path", path).Int("rules", c.Len()).Msg("Wrote rule file")
	return nil
}
