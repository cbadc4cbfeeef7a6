// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package command

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newKeysCommand() *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "Access token signing keys",
	}

	var (
		dir  string
		bits int
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Write a new RSA key pair as private.pem and public.pem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			privatePath, publicPath, err := GenerateKeyPair(dir, bits)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\npublic key:  %s\n", privatePath, publicPath)
			return nil
		},
	}
	generate.Flags().StringVar(&dir, "dir", "./keys", "output directory")
	generate.Flags().IntVar(&bits, "bits", 2048, "RSA modulus size")

	keys.AddCommand(generate)
	return keys
}

// GenerateKeyPair writes a PKCS#8 private key and a PKIX public key under dir.
// Existing files are never overwritten.
func GenerateKeyPair(dir string, bits int) (privatePath, publicPath string, err error) {
	if bits < 2048 {
		return "", "", fmt.Errorf("key size %d is too small, use at least 2048", bits)
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("generate rsa key: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("encode private key: %w", err)
	}
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("encode public key: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", "", err
	}

	privatePath = filepath.Join(dir, "private.pem")
	publicPath = filepath.Join(dir, "public.pem")

	if err := writePEM(privatePath, "PRIVATE KEY", privateDER, 0o600); err != nil {
		return "", "", err
	}
	if err := writePEM(publicPath, "PUBLIC KEY", publicDER, 0o644); err != nil {
		return "", "", err
	}

	return privatePath, publicPath, nil
}

func writePEM(path, blockType string, der []byte, mode os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := pem.Encode(file, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
