package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
	"github.com/mahdiidarabi/chonker/pkg/dh"
	"github.com/mahdiidarabi/chonker/pkg/recovery"
	"github.com/mahdiidarabi/chonker/pkg/rsablock"
)

func main() {
	var (
		mode     = flag.String("mode", "", "Operation: rsa-generate, rsa-encrypt, rsa-decrypt, rsa-bruteforce, rsa-recover-file or dh")
		digits   = flag.Int("digits", rsablock.DefaultModulusDigits, "Modulus length in decimal digits for rsa-generate")
		modulus  = flag.String("modulus", "", "RSA modulus n (decimal)")
		exponent = flag.String("exponent", "", "RSA exponent: e for rsa-encrypt and rsa-bruteforce, d for rsa-decrypt")
		text     = flag.String("text", "", "Plaintext for rsa-encrypt, hex ciphertext for rsa-decrypt")
		workers  = flag.Int("workers", 8, "Number of parallel workers for rsa-bruteforce (1-64)")
		keysFile = flag.String("keys", "", "Path to public key file for rsa-recover-file (JSON or CSV)")
		format   = flag.String("format", "json", "Key file format (json or csv)")
		prime    = flag.String("prime", "", "Diffie-Hellman shared prime (generated when empty)")
		base     = flag.String("base", "", "Diffie-Hellman shared base (generated when empty)")
		secretA  = flag.String("secret-a", "", "Diffie-Hellman secret of A (generated when empty)")
		secretB  = flag.String("secret-b", "", "Diffie-Hellman secret of B (generated when empty)")
		logLevel = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "rsa-generate":
		err = generate(*digits)
	case "rsa-encrypt":
		err = encrypt(*modulus, *exponent, *text)
	case "rsa-decrypt":
		err = decrypt(*modulus, *exponent, *text)
	case "rsa-bruteforce":
		err = bruteforce(ctx, *modulus, *exponent, *workers)
	case "rsa-recover-file":
		err = recoverFile(ctx, *keysFile, *format, *workers)
	case "dh":
		err = exchange(*prime, *base, *secretA, *secretB)
	default:
		fmt.Fprintf(os.Stderr, "Error: --mode is required\n")
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generate(digits int) error {
	kp, err := rsablock.GenerateKeyPair(rand.Reader, digits)
	if err != nil {
		return err
	}
	fmt.Printf("[+] Generated %d-digit RSA key pair\n", kp.Modulus.Len())
	fmt.Printf("    Modulus (n):          %s\n", kp.Modulus)
	fmt.Printf("    Public exponent (e):  %s\n", kp.PublicExponent)
	fmt.Printf("    Private exponent (d): %s\n", kp.PrivateExponent)
	return nil
}

func encrypt(modulus, exponent, plaintext string) error {
	key, err := parseKey(modulus, exponent)
	if err != nil {
		return err
	}
	ct, err := rsablock.Encrypt([]byte(plaintext), key)
	if err != nil {
		return err
	}
	fmt.Println(ct)
	return nil
}

func decrypt(modulus, exponent, ciphertext string) error {
	key, err := parseKey(modulus, exponent)
	if err != nil {
		return err
	}
	pt, err := rsablock.Decrypt(strings.TrimSpace(ciphertext), key)
	if err != nil {
		return err
	}
	fmt.Println(string(pt))
	return nil
}

func bruteforce(ctx context.Context, modulus, exponent string, workers int) error {
	key, err := parseKey(modulus, exponent)
	if err != nil {
		return err
	}
	fmt.Printf("Factoring %s with %d workers...\n", key.Modulus, workers)

	d, err := recovery.BruteforcePrivateKey(ctx, key.Exponent, key.Modulus, workers)
	if err != nil {
		return err
	}
	fmt.Printf("\n[+] Recovered private exponent!\n")
	fmt.Printf("    d: %s\n", d)
	return nil
}

func recoverFile(ctx context.Context, path, format string, workers int) error {
	if path == "" {
		return fmt.Errorf("--keys is required")
	}

	var parser recovery.KeyParser
	if format == "json" {
		parser = &recovery.JSONParser{}
	} else {
		parser = &recovery.CSVParser{}
	}

	cfg := recovery.DefaultRangeConfig()
	cfg.NumWorkers = workers
	client := recovery.NewClient().
		WithParser(parser).
		WithStrategy(recovery.NewSmartBruteForceStrategy().WithRangeConfig(cfg))

	outcomes, err := client.RecoverKeys(ctx, path)
	if err != nil {
		return err
	}

	recovered := 0
	for i, o := range outcomes {
		if o.Err != nil {
			fmt.Printf("[-] Key %d (n=%s): %v\n", i, o.Key.N, o.Err)
			continue
		}
		recovered++
		fmt.Printf("[+] Key %d (n=%s): d=%s p=%s q=%s\n", i, o.Key.N, o.Result.KeyPair.PrivateExponent, o.Result.P, o.Result.Q)
		if o.Result.Verified {
			fmt.Println("    ✓ Verified by round trip")
		}
	}
	fmt.Printf("\nRecovered %d of %d keys\n", recovered, len(outcomes))
	return nil
}

func exchange(prime, base, secretA, secretB string) error {
	var params dh.Parameters
	for _, f := range []struct {
		value string
		dst   **bigint.BigInt
		name  string
	}{
		{prime, &params.Prime, "prime"},
		{base, &params.Base, "base"},
		{secretA, &params.SecretA, "secret-a"},
		{secretB, &params.SecretB, "secret-b"},
	} {
		v, err := parseOptional(f.value)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", f.name, err)
		}
		*f.dst = v
	}

	res, err := dh.Exchange(rand.Reader, params)
	if err != nil {
		return err
	}
	fmt.Printf("Shared prime:  %s\n", res.Prime)
	fmt.Printf("Shared base:   %s\n", res.Base)
	fmt.Printf("Secret A:      %s\n", res.SecretA)
	fmt.Printf("Secret B:      %s\n", res.SecretB)
	fmt.Printf("A -> B:        %s\n", res.PublicA)
	fmt.Printf("B -> A:        %s\n", res.PublicB)
	fmt.Printf("Shared secret: %s\n", res.SharedSecret())
	return nil
}

func parseKey(modulus, exponent string) (rsablock.Key, error) {
	if modulus == "" || exponent == "" {
		return rsablock.Key{}, fmt.Errorf("--modulus and --exponent are required")
	}
	n, err := bigint.FromString(strings.TrimSpace(modulus))
	if err != nil {
		return rsablock.Key{}, fmt.Errorf("invalid --modulus: %w", err)
	}
	e, err := bigint.FromString(strings.TrimSpace(exponent))
	if err != nil {
		return rsablock.Key{}, fmt.Errorf("invalid --exponent: %w", err)
	}
	return rsablock.Key{Modulus: n, Exponent: e}, nil
}

func parseOptional(s string) (*bigint.BigInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := bigint.FromString(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
