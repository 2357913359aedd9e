package commands

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm/errors"
)

// Example is an entity written out by TestGenCmd. Filename has neither a
// directory nor an extension.
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes every example as <name>.json, <name>.bin and
// <name>.hex into the directory given as the first argument, "testdata"
// by default. Clients in other languages use the files to check their
// encoders against the node.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	for _, ex := range examples {
		if err := writeExample(outdir, ex); err != nil {
			return errors.Wrapf(err, "example %q", ex.Filename)
		}
	}
	return nil
}

func writeExample(outdir string, ex Example) error {
	js, err := json.MarshalIndent(ex.Obj, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	pb, err := proto.Marshal(ex.Obj)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	files := map[string][]byte{
		".json": js,
		".bin":  pb,
		".hex":  []byte(hex.EncodeToString(pb)),
	}
	for ext, content := range files {
		path := filepath.Join(outdir, ex.Filename+ext)
		if err := ioutil.WriteFile(path, content, 0644); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}
