/*
 * pack.go, part of goMeso.
 *
 *
 * Copyright 2024 The goMeso Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package restart

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	meso "github.com/rmera/gomeso"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

//Restart files are written uncompressed, since the writer needs to seek.
//Pack and open deal with compressed copies.

//Pack writes a compressed copy of the restart file src to dst. dst is compressed
//with gzip if its name ends in ".gz", and with zstd otherwise.
func Pack(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return meso.NewError(meso.IOError, src, "%s", err.Error())
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return meso.NewError(meso.IOError, dst, "%s", err.Error())
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	AnyNewWriter := zstdwriter
	if strings.HasSuffix(strings.ToLower(dst), ".gz") {
		AnyNewWriter = gzipwriter
	}
	h, err := AnyNewWriter(out)
	if err != nil {
		out.Close()
		return meso.NewError(meso.IOError, dst, "can't start compression: %s", err.Error())
	}
	if _, err := io.Copy(h, bufio.NewReader(in)); err != nil {
		h.Close()
		out.Close()
		return meso.NewError(meso.IOError, dst, "compressing %s: %s", src, err.Error())
	}
	if err := h.Close(); err != nil {
		out.Close()
		return meso.NewError(meso.IOError, dst, "%s", err.Error())
	}
	if err := out.Close(); err != nil {
		return meso.NewError(meso.IOError, dst, "%s", err.Error())
	}
	return nil
}

//open opens a restart file for reading. Compressed files are decompressed to memory,
//since reading needs to seek. The returned function closes whatever needs closing.
func open(path string) (io.ReadSeeker, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, meso.NewError(meso.IOError, path, "%s", err.Error())
	}
	head := make([]byte, len(zstdMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return nil, func() {}, meso.NewError(meso.IOError, path, "%s", err.Error())
	}
	head = head[:n]
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, func() {}, meso.NewError(meso.IOError, path, "%s", err.Error())
	}
	var data []byte
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		var d *zstd.Decoder
		d, err = zstd.NewReader(f)
		if err == nil {
			data, err = io.ReadAll(d)
			d.Close()
		}
	case bytes.HasPrefix(head, gzipMagic):
		var d *gzip.Reader
		d, err = gzip.NewReader(f)
		if err == nil {
			data, err = io.ReadAll(d)
		}
	default:
		return f, func() { f.Close() }, nil
	}
	f.Close()
	if err != nil {
		return nil, func() {}, meso.NewError(meso.IOError, path, "decompressing: %s", err.Error())
	}
	return bytes.NewReader(data), func() {}, nil
}
