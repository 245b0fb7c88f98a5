// Package main is a command line front end to the ecschnorr signers. The
// curve, hash, variant and signature format come from the environment, see
// `ecschnorr help`; keys, messages and signatures are hex on the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/templexxx/xhex"
	"lol.mleku.dev/chk"
	"lol.mleku.dev/errorf"
	"lol.mleku.dev/log"

	"ecschnorr.mleku.dev"
	"ecschnorr.mleku.dev/config"
	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/sigfmt"
)

// GenerateCmd creates a fresh key pair.
type GenerateCmd struct{}

// PubkeyCmd derives the public key of a secret key.
type PubkeyCmd struct {
	Sec          string `arg:"positional,required" help:"secret key in hex"`
	Uncompressed bool   `help:"print the uncompressed point encoding"`
}

// SignCmd signs a message.
type SignCmd struct {
	Sec   string `arg:"positional,required" help:"secret key in hex"`
	Msg   string `arg:"positional,required" help:"message in hex"`
	Nonce string `default:"random" help:"nonce source: random, rfc6979, bip, or a nonce scalar in hex"`
	Aux   string `help:"hex suffix mixed into the bip nonce, only the first 16 bytes are used"`
}

// VerifyCmd verifies a signature.
type VerifyCmd struct {
	Pub string `arg:"positional,required" help:"public key in hex, compressed or uncompressed"`
	Msg string `arg:"positional,required" help:"message in hex"`
	Sig string `arg:"positional,required" help:"signature in hex"`
}

// Args are the command line arguments.
type Args struct {
	Generate *GenerateCmd `arg:"subcommand:generate" help:"generate a key pair"`
	Pubkey   *PubkeyCmd   `arg:"subcommand:pubkey" help:"derive the public key of a secret key"`
	Sign     *SignCmd     `arg:"subcommand:sign" help:"sign a message"`
	Verify   *VerifyCmd   `arg:"subcommand:verify" help:"verify a signature"`
}

// ErrInvalidSignature is returned by the verify command for a signature that
// does not verify.
var ErrInvalidSignature = errors.New("invalid signature")

func main() {
	var args Args
	if config.HelpRequested() {
		if cfg, err := config.New(); !chk.E(err) {
			config.PrintHelp(cfg, os.Stderr)
			fmt.Fprintln(os.Stderr)
		}
		if p, err := arg.NewParser(arg.Config{}, &args); !chk.E(err) {
			p.WriteHelp(os.Stderr)
		}
		os.Exit(0)
	}
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	cfg, err := config.New()
	if chk.E(err) {
		os.Exit(1)
	}
	if err = run(cfg, &args, os.Stdout); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			fmt.Fprintln(os.Stdout, "invalid")
			os.Exit(1)
		}
		log.F.F("%s", err)
		os.Exit(1)
	}
}

// run executes the selected subcommand, printing its result to w.
func run(cfg *config.C, args *Args, w io.Writer) (err error) {
	var c *curve.Curve
	if c, err = cfg.GetCurve(); err != nil {
		return
	}
	switch {
	case args.Generate != nil:
		return generate(c, w)
	case args.Pubkey != nil:
		return pubkey(c, args.Pubkey, w)
	case args.Sign != nil:
		return sign(cfg, c, args.Sign, w)
	case args.Verify != nil:
		return verify(cfg, c, args.Verify, w)
	}
	return errorf.E("no command given")
}

func generate(c *curve.Curve, w io.Writer) (err error) {
	var priv *ecschnorr.PrivateKey
	if priv, err = ecschnorr.GeneratePrivateKey(c); err != nil {
		return
	}
	defer priv.Zero()
	_, err = fmt.Fprintf(w, "sec %s\npub %s\n",
		encodeHex(priv.Bytes()), encodeHex(priv.PublicKey().SerializeCompressed()))
	return
}

func pubkey(c *curve.Curve, cmd *PubkeyCmd, w io.Writer) (err error) {
	var priv *ecschnorr.PrivateKey
	if priv, err = parseSec(c, cmd.Sec); err != nil {
		return
	}
	defer priv.Zero()
	pub := priv.PublicKey()
	if cmd.Uncompressed {
		_, err = fmt.Fprintln(w, encodeHex(pub.SerializeUncompressed()))
		return
	}
	_, err = fmt.Fprintln(w, encodeHex(pub.SerializeCompressed()))
	return
}

func sign(cfg *config.C, c *curve.Curve, cmd *SignCmd, w io.Writer) (err error) {
	var s *ecschnorr.Signer
	if s, err = cfg.Signer(); err != nil {
		return
	}
	var priv *ecschnorr.PrivateKey
	if priv, err = parseSec(c, cmd.Sec); err != nil {
		return
	}
	defer priv.Zero()
	var msg []byte
	if msg, err = decodeHex("message", cmd.Msg); err != nil {
		return
	}
	var sig sigfmt.Encoded
	switch strings.ToLower(cmd.Nonce) {
	case "random":
		sig, err = s.Sign(msg, priv)
	case "rfc6979":
		sig, err = s.SignRFC6979(msg, priv)
	case "bip":
		var aux []byte
		if aux, err = decodeHex("aux", cmd.Aux); err != nil {
			return
		}
		sig, err = s.SignBIP(msg, priv, aux)
	default:
		var kb []byte
		if kb, err = decodeHex("nonce", cmd.Nonce); err != nil {
			return
		}
		sig, err = s.SignK(msg, priv, new(big.Int).SetBytes(kb))
	}
	if err != nil {
		return
	}
	b, ok := sig.(sigfmt.Bytes)
	if !ok {
		return errorf.E("signature format %s cannot be printed as hex", s.Format())
	}
	_, err = fmt.Fprintln(w, encodeHex(b))
	return
}

func verify(cfg *config.C, c *curve.Curve, cmd *VerifyCmd, w io.Writer) (err error) {
	var s *ecschnorr.Signer
	if s, err = cfg.Signer(); err != nil {
		return
	}
	var pb, msg, sig []byte
	if pb, err = decodeHex("public key", cmd.Pub); err != nil {
		return
	}
	if msg, err = decodeHex("message", cmd.Msg); err != nil {
		return
	}
	if sig, err = decodeHex("signature", cmd.Sig); err != nil {
		return
	}
	var pub *ecschnorr.PublicKey
	if pub, err = ecschnorr.ParsePublicKey(c, pb); err != nil {
		return
	}
	if !s.Verify(msg, sigfmt.Bytes(sig), pub) {
		return ErrInvalidSignature
	}
	_, err = fmt.Fprintln(w, "valid")
	return
}

func parseSec(c *curve.Curve, h string) (priv *ecschnorr.PrivateKey, err error) {
	var b []byte
	if b, err = decodeHex("secret key", h); err != nil {
		return
	}
	return ecschnorr.PrivateKeyFromBytes(c, b)
}

func decodeHex(name, h string) (b []byte, err error) {
	src := []byte(strings.ToLower(strings.TrimPrefix(h, "0x")))
	if len(src)%2 != 0 {
		err = errorf.E("invalid length for %s hex: %d", name, len(src))
		return
	}
	b = make([]byte, len(src)/2)
	if err = xhex.Decode(b, src); chk.E(err) {
		err = errorf.E("invalid %s hex: %v", name, err)
		return
	}
	return
}

func encodeHex(b []byte) string {
	dst := make([]byte, len(b)*2)
	xhex.Encode(dst, b)
	return string(dst)
}
