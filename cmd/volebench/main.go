// Command volebench exercises the VOLE commitment core end to end: it
// runs stream_vole_commit against a named parameter set, decommits
// under an all-zero challenge, reconstructs hcom, and reports timing.
// It is a demonstrator, not a signing tool; parameter negotiation,
// networking, and persistence all live outside the core by design.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/faest-go/vole/log"
	"github.com/faest-go/vole/params"
	"github.com/faest-go/vole/vole"
)

func main() {
	instance := flag.String("instance", "FAEST-128s", "parameter set name")
	runs := flag.Int("runs", 1, "number of independent commit/decommit runs, executed in parallel")
	seedHex := flag.String("seed", "", "hex root seed of lambda/8 bytes; random if empty")
	dump := flag.Bool("dump", false, "dump the decommitment structures with go-spew")
	flag.Parse()

	logger := log.Default().Module("volebench")

	p, err := params.ByName(*instance)
	if err != nil {
		logger.Error("unknown instance", "err", err)
		os.Exit(1)
	}
	logger = logger.Instance(p.Name, p.Lambda, p.Tau())

	rootKey := make([]byte, p.LambdaBytes())
	if *seedHex != "" {
		decoded, err := hex.DecodeString(*seedHex)
		if err != nil || len(decoded) != len(rootKey) {
			logger.Error("invalid seed hex", "err", err, "want_bytes", len(rootKey))
			os.Exit(1)
		}
		copy(rootKey, decoded)
	} else if _, err := rand.Read(rootKey); err != nil {
		logger.Error("failed to generate random seed", "err", err)
		os.Exit(1)
	}

	iv := make([]byte, params.IVSize)
	chal := make([]byte, p.LambdaBytes())

	logger.Info("starting run", "runs", *runs, "columns", p.TotalColumns())

	var g errgroup.Group
	for i := 0; i < *runs; i++ {
		i := i
		g.Go(func() error {
			return runOnce(logger.With("run", i), p, rootKey, iv, chal, *dump)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

// runOnce performs one commit/decommit/verify cycle. Every call
// touches only its own stack-local buffers, so independent calls may
// run concurrently in separate goroutines without shared mutable
// state.
func runOnce(logger *log.Logger, p params.ParamSet, rootKey, iv, chal []byte, dump bool) error {
	start := time.Now()
	result, err := vole.StreamVoleCommit(rootKey, iv, p)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	commitElapsed := time.Since(start)

	for i, tree := range result.Trees {
		logger.Tree(i).Debug("tree committed", "leaves", len(tree.Sd))
	}

	decStart := time.Now()
	decs, err := vole.Decommit(rootKey, iv, p, chal)
	if err != nil {
		return fmt.Errorf("decommit: %w", err)
	}
	decElapsed := time.Since(decStart)

	verifyStart := time.Now()
	hcom, err := vole.VoleReconstructHcom(iv, chal, decs, p)
	if err != nil {
		return fmt.Errorf("reconstruct hcom: %w", err)
	}
	verifyElapsed := time.Since(verifyStart)

	ok := vole.VerifyHcom(hcom, result.Hcom)
	logger.Info("run complete",
		"commit", commitElapsed,
		"decommit", decElapsed,
		"verify", verifyElapsed,
		"hcom_match", ok,
	)
	if !ok {
		return fmt.Errorf("hcom mismatch")
	}

	if dump {
		spew.Dump(decs[0])
	}
	return nil
}
