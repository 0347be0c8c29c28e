//go:build linux

package fuse

import (
	"context"
	"os"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// SnapshotFS serves a Snapshot as a read-only file system.
type SnapshotFS struct {
	snap  *Snapshot
	mtime time.Time
}

func NewSnapshotFS(snap *Snapshot) *SnapshotFS {
	return &SnapshotFS{snap: snap, mtime: time.Now()}
}

func (sfs *SnapshotFS) Root() (fs.Node, error) {
	return &Dir{fs: sfs, node: sfs.snap.Root}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs   *SnapshotFS
	node *Node
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	a.Mtime = d.fs.mtime
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	n, ok := d.node.Child(name)
	if !ok {
		return nil, fuse.ENOENT
	}
	if n.IsDir() {
		return &Dir{fs: d.fs, node: n}, nil
	}
	return &File{fs: d.fs, node: n}, nil
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, len(d.node.Children))
	for i, c := range d.node.Children {
		typ := fuse.DT_File
		if c.IsDir() {
			typ = fuse.DT_Dir
		}
		dirEntries[i] = fuse.Dirent{
			Inode: uint64(i + 1),
			Name:  c.Name,
			Type:  typ,
		}
	}
	return dirEntries, nil
}

// File implements both fs.Node and fs.HandleReader
type File struct {
	fs   *SnapshotFS
	node *Node
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(len(f.node.Data))
	a.Mtime = f.fs.mtime
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	data := f.node.Data
	if req.Offset >= int64(len(data)) {
		resp.Data = []byte{}
		return nil
	}

	end := min(req.Offset+int64(req.Size), int64(len(data)))
	resp.Data = data[req.Offset:end]
	return nil
}

var (
	_ fs.FS                 = (*SnapshotFS)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.HandleReader       = (*File)(nil)
)
