// Package config loads the signing configuration from the environment and
// builds the curve, hash and signer it describes.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go-simpler.org/env"
	"lol.mleku.dev"
	"lol.mleku.dev/chk"

	"ecschnorr.mleku.dev"
	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
	"ecschnorr.mleku.dev/sigfmt"
)

// C is the environment configuration of the ecschnorr tools.
type C struct {
	AppName     string `env:"ECSCHNORR_APP_NAME" default:"ecschnorr"`
	Curve       string `env:"ECSCHNORR_CURVE" default:"secp256k1" usage:"curve name: secp256k1, secp256r1 (P-256)"`
	Hash        string `env:"ECSCHNORR_HASH" default:"sha256" usage:"hash function: sha224 sha256 sha384 sha512 sha3-256 sha3-512 keccak256 blake2b-256 blake2b-512"`
	Variant     string `env:"ECSCHNORR_VARIANT" default:"ISO" usage:"Schnorr variant: ISO ISOx BSI BIP Z LIBSECP"`
	Format      string `env:"ECSCHNORR_FORMAT" default:"DER" usage:"signature format: DER RAW EDDSA (BTUPLE and ITUPLE are library only)"`
	MaxAttempts int    `env:"ECSCHNORR_MAX_ATTEMPTS" default:"10" usage:"nonces a signing call may try before failing"`
	LogLevel    string `env:"ECSCHNORR_LOG_LEVEL" default:"info" usage:"debug level: fatal error warn info debug trace"`
}

// New loads C from the environment and applies its log level.
func New() (cfg *C, err error) {
	cfg = &C{}
	if err = env.Load(cfg, nil); chk.E(err) {
		return
	}
	lol.SetLogLevel(cfg.LogLevel)
	return
}

// GetCurve resolves the configured curve.
func (cfg *C) GetCurve() (c *curve.Curve, err error) {
	if c, err = curve.ByName(cfg.Curve); err != nil {
		err = fmt.Errorf("%w: %q", err, cfg.Curve)
	}
	return
}

// GetHash resolves the configured hash function.
func (cfg *C) GetHash() (h digest.Func, err error) {
	if h, err = digest.ByName(cfg.Hash); err != nil {
		err = fmt.Errorf("%w: %q", err, cfg.Hash)
	}
	return
}

// Signer builds the configured signer, bound to the configured curve.
func (cfg *C) Signer() (s *ecschnorr.Signer, err error) {
	var (
		c *curve.Curve
		h digest.Func
		v ecschnorr.Variant
		f sigfmt.Format
	)
	if c, err = cfg.GetCurve(); err != nil {
		return
	}
	if h, err = cfg.GetHash(); err != nil {
		return
	}
	if v, err = ecschnorr.ParseVariant(cfg.Variant); err != nil {
		return
	}
	if f, err = sigfmt.ParseFormat(cfg.Format); err != nil {
		return
	}
	return ecschnorr.New(h, v, f,
		ecschnorr.WithMaxAttempts(cfg.MaxAttempts), ecschnorr.WithCurve(c))
}

// HelpRequested returns true if any of the common types of help invocation are
// found as the first command line parameter/flag.
func HelpRequested() (help bool) {
	if len(os.Args) > 1 {
		switch strings.ToLower(os.Args[1]) {
		case "help", "-h", "--h", "-help", "--help", "?":
			help = true
		}
	}
	return
}

// PrintHelp outputs a help text listing the configuration options and default
// values to a provided io.Writer (usually os.Stderr or os.Stdout).
func PrintHelp(cfg *C, printer io.Writer) {
	_, _ = fmt.Fprintf(printer,
		"Environment variables that configure %s:\n\n", cfg.AppName)
	env.Usage(cfg, printer, nil)
}
