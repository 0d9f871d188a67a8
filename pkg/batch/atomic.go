package batch

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
)

// TempFilePrefix is the prefix of the temporary files the commit
// protocol creates in the platform temp location.
const TempFilePrefix = "cpcleaner-"

// WriteFileAtomic commits data to path without ever leaving a partial
// file there: the content is first written completely to a uniquely
// named temporary file, only then is any pre-existing file at path
// deleted and the temporary file moved into place.
//
// If the write fails, path is untouched. If the delete or move fails
// partway, the temporary file may survive as an orphan; by then the
// replacement content is durably on disk, which is the acceptable
// degraded state.
func WriteFileAtomic(fs afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fs, "", TempFilePrefix+"*"+DocumentSuffix)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCreate, "creating temporary file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "writing temporary file %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "syncing temporary file %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "closing temporary file %s", tmpName)
	}

	if info, err := fs.Stat(path); err == nil && !info.IsDir() {
		if err := fs.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileDelete, "removing old output %s", path)
		}
	}

	if err := fs.Rename(tmpName, path); err != nil {
		// The temp location and the output may sit on different
		// filesystems, where rename cannot work; fall back to a copy.
		if copyErr := copyFile(fs, tmpName, path); copyErr != nil {
			return errors.Wrapf(err, errors.ErrFileMove, "moving %s to %s", tmpName, path)
		}
		_ = fs.Remove(tmpName)
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
