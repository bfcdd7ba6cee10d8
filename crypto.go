package binframe

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const aesKeySize = 32

// aesEncrypt returns data encrypted with AES-256-CBC and PKCS7 padding.
// key must be 32 bytes and iv one block (16 bytes).
func aesEncrypt(data, key, iv []byte) ([]byte, error) {
	block, err := newAESBlock(key, iv)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(data, aes.BlockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(padded, padded)
	return padded, nil
}

// aesDecrypt inverts aesEncrypt, validating block alignment and padding.
func aesDecrypt(data, key, iv []byte) ([]byte, error) {
	block, err := newAESBlock(key, iv)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrCrypto, len(data))
	}
	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)
	return pkcs7Unpad(plain, aes.BlockSize)
}

func newAESBlock(key, iv []byte) (cipher.Block, error) {
	if len(key) != aesKeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrCrypto, aesKeySize, len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrCrypto, aes.BlockSize, len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return block, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrCrypto)
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrCrypto)
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("%w: invalid padding", ErrCrypto)
		}
	}
	return data[:len(data)-pad], nil
}

// Encrypt replaces the encoder's accumulated buffer with its AES-256-CBC
// ciphertext. This is a whole-buffer operation: call it once, after all field
// writes are complete.
func (e *Encoder) Encrypt() error {
	out, err := aesEncrypt(e.buf, e.options.Key, e.options.IV)
	if err != nil {
		return err
	}
	e.buf = out
	return nil
}

// Decrypt replaces the encoder's accumulated buffer with its decrypted
// plaintext.
func (e *Encoder) Decrypt() error {
	out, err := aesDecrypt(e.buf, e.options.Key, e.options.IV)
	if err != nil {
		return err
	}
	e.buf = out
	return nil
}

// Decrypt replaces the parser's unconsumed bytes with their decrypted
// plaintext and rewinds the cursor to its start. Call it before any field
// reads: the whole remaining region is transformed at once.
func (p *Parser) Decrypt() error {
	out, err := aesDecrypt(p.buf.bytes()[p.cursor:], p.options.Key, p.options.IV)
	if err != nil {
		return err
	}
	p.buf = ownedBuffer(out)
	p.cursor = 0
	return nil
}

// Encrypt replaces the parser's unconsumed bytes with their AES-256-CBC
// ciphertext and rewinds the cursor to its start.
func (p *Parser) Encrypt() error {
	out, err := aesEncrypt(p.buf.bytes()[p.cursor:], p.options.Key, p.options.IV)
	if err != nil {
		return err
	}
	p.buf = ownedBuffer(out)
	p.cursor = 0
	return nil
}
