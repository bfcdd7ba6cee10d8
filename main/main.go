// Command binframe-demo encodes and decodes a sample payload under
// runtime-selected options, printing the wire bytes and the recovered values.
// Options come from an optional TOML file with flag overrides.
package main

import (
	"encoding/hex"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/rawbytedev/binframe"
)

type config struct {
	Endianness           string `toml:"endianness"`
	PrependDataSize      bool   `toml:"prepend_data_size"`
	LengthPrefixedFields bool   `toml:"length_prefixed_fields"`
	StrictEncoding       bool   `toml:"strict_encoding"`
	TrimNullStrings      bool   `toml:"trim_null_strings"`
	VerboseErrors        bool   `toml:"verbose_errors"`
	Key                  string `toml:"key"` // hex, 32 bytes
	IV                   string `toml:"iv"`  // hex, 16 bytes
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		configPath = flag.String("config", "", "TOML options file")
		endianness = flag.String("endianness", "big", "byte order: big, little or native")
		prepend    = flag.Bool("prepend-size", false, "prefix every item with its u32 byte length")
		prefixed   = flag.Bool("length-prefixed", false, "expect u32 length envelopes when decoding")
		strict     = flag.Bool("strict", false, "reject malformed text instead of substituting")
		trimNulls  = flag.Bool("trim-nulls", false, "strip trailing NULs from decoded strings")
		verbose    = flag.Bool("verbose", false, "verbose decode diagnostics")
		keyHex     = flag.String("key", "", "AES-256 key in hex (64 chars)")
		ivHex      = flag.String("iv", "", "AES IV in hex (32 chars)")
		pprofAddr  = flag.String("pprof", "", "serve net/http/pprof on this address")
	)
	flag.Parse()

	cfg := config{Endianness: "big"}
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
	}
	cfg.applyFlagOverrides(endianness, prepend, prefixed, strict, trimNulls, verbose, keyHex, ivHex)

	if *pprofAddr != "" {
		go func() {
			log.Error().Err(http.ListenAndServe(*pprofAddr, nil)).Msg("pprof server stopped")
		}()
	}

	encOpts, parseOpts, err := cfg.toOptions()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}
	if cfg.VerboseErrors {
		binframe.SetLogger(log)
	}

	// The reference payload: an i32, a string and a byte vector.
	enc := binframe.NewEncoderWithOptions(encOpts)
	enc.AddInt32(123)
	enc.AddString("Hello, world!")
	if err := binframe.EncodeFixedSlice(enc, []byte{1, 2, 3}); err != nil {
		log.Fatal().Err(err).Msg("encode")
	}
	if len(encOpts.Key) > 0 {
		if err := enc.Encrypt(); err != nil {
			log.Fatal().Err(err).Msg("encrypt")
		}
	}
	log.Info().Int("bytes", enc.Len()).Str("hex", hex.EncodeToString(enc.Data())).Msg("encoded")

	p := binframe.NewParserWithOptions(enc.Data(), parseOpts)
	if len(parseOpts.Key) > 0 {
		if err := p.Decrypt(); err != nil {
			log.Fatal().Err(err).Msg("decrypt")
		}
	}
	n, err := p.GetInt32()
	if err != nil {
		log.Fatal().Err(err).Msg("decode int32")
	}
	s, err := p.GetString(false)
	if err != nil {
		log.Fatal().Err(err).Msg("decode string")
	}
	v, err := binframe.DecodeFixedVector[byte](p)
	if err != nil {
		log.Fatal().Err(err).Msg("decode vector")
	}
	log.Info().Int32("int32", n).Str("string", s).Hex("vector", v).Msg("decoded")
}

func (c *config) applyFlagOverrides(endianness *string, prepend, prefixed, strict, trimNulls, verbose *bool, keyHex, ivHex *string) {
	if flag.CommandLine.Changed("endianness") {
		c.Endianness = *endianness
	}
	if flag.CommandLine.Changed("prepend-size") {
		c.PrependDataSize = *prepend
	}
	if flag.CommandLine.Changed("length-prefixed") {
		c.LengthPrefixedFields = *prefixed
	}
	if flag.CommandLine.Changed("strict") {
		c.StrictEncoding = *strict
	}
	if flag.CommandLine.Changed("trim-nulls") {
		c.TrimNullStrings = *trimNulls
	}
	if flag.CommandLine.Changed("verbose") {
		c.VerboseErrors = *verbose
	}
	if flag.CommandLine.Changed("key") {
		c.Key = *keyHex
	}
	if flag.CommandLine.Changed("iv") {
		c.IV = *ivHex
	}
}

func (c *config) toOptions() (binframe.EncodeOptions, binframe.ParseOptions, error) {
	var e binframe.Endianness
	switch c.Endianness {
	case "", "big":
		e = binframe.BigEndian
	case "little":
		e = binframe.LittleEndian
	case "native":
		e = binframe.NativeEndian
	default:
		return binframe.EncodeOptions{}, binframe.ParseOptions{},
			errors.New("endianness must be big, little or native")
	}

	encOpts := binframe.DefaultEncodeOptions().WithEndianness(e)
	if c.PrependDataSize {
		encOpts = encOpts.WithPrependedDataSize()
	}
	parseOpts := binframe.DefaultParseOptions().WithEndianness(e)
	if c.LengthPrefixedFields {
		parseOpts = parseOpts.WithLengthPrefixedFields()
	}
	if c.StrictEncoding {
		parseOpts = parseOpts.WithStrictEncoding()
	}
	if c.TrimNullStrings {
		parseOpts = parseOpts.WithTrimNullStrings()
	}
	if c.VerboseErrors {
		parseOpts = parseOpts.WithVerboseErrors()
	}

	if c.Key != "" {
		key, err := hex.DecodeString(c.Key)
		if err != nil {
			return encOpts, parseOpts, err
		}
		iv, err := hex.DecodeString(c.IV)
		if err != nil {
			return encOpts, parseOpts, err
		}
		encOpts = encOpts.WithEncryption(key, iv)
		parseOpts = parseOpts.WithEncryption(key, iv)
	}
	return encOpts, parseOpts, nil
}
