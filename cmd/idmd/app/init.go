package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/commands/server"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/x/object"
	"github.com/iov-one/idm/x/sigs"
	"github.com/iov-one/idm/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
)

type genesisSchema struct {
	Pkg string `json:"pkg"`
	Ver uint32 `json:"ver"`
}

type genesis struct {
	InitializeSchema []genesisSchema                 `json:"initialize_schema"`
	Conf             map[string]*object.Configuration `json:"conf"`
	Initialize       struct {
		Owners []idm.Address `json:"owners"`
	} `json:"initialize"`
}

// GenInitOptions will produce the genesis app state with the given owner
// addresses. Without arguments, keys of the minimal number of owners are
// generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	conf := object.DefaultConfiguration()

	var owners []idm.Address
	for _, a := range args {
		addr, err := idm.ParseAddress(a)
		if err != nil {
			return nil, errors.Wrapf(err, "owner %q", a)
		}
		owners = append(owners, addr)
	}
	if len(owners) == 0 {
		for i := uint32(0); i < conf.MinInitialOwners; i++ {
			addr, secret, err := GenerateOwnerKey()
			if err != nil {
				return nil, err
			}
			fmt.Printf("owner %d: %s secret: %s\n", i, addr, secret)
			owners = append(owners, addr)
		}
	}

	var gen genesis
	for _, pkg := range []string{"sigs", "object", "mst"} {
		gen.InitializeSchema = append(gen.InitializeSchema, genesisSchema{Pkg: pkg, Ver: 1})
	}
	gen.Conf = map[string]*object.Configuration{"object": conf}
	gen.Initialize.Owners = owners
	return json.MarshalIndent(gen, "", "  ")
}

// GenerateOwnerKey returns the address of a new secp256k1 key, along with
// the hex encoded private key.
func GenerateOwnerKey() (idm.Address, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	return sigs.KeyAddress(key), hex.EncodeToString(crypto.FromECDSA(key)), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "idm.db")
	}

	var metrics *utils.Metrics
	if options.Metrics != nil {
		m, err := utils.NewMetrics(options.Metrics)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	application, err := Application("idm", Stack(metrics), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}
