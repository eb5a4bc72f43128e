package age

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
	"github.com/charmbracelet/log"
	"primamateria.systems/tabula/internal/source"
)

// AgeSource reads and writes age encrypted tables.
type AgeSource struct {
	identities []age.Identity
	recipients []age.Recipient
}

func NewAgeSource(c Config) (*AgeSource, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}
	ifile, err := os.Open(c.IdentPath)
	if err != nil {
		return nil, err
	}
	defer ifile.Close()
	idents, err := age.ParseIdentities(ifile)
	if err != nil {
		return nil, fmt.Errorf("error parsing age identities from %v: %w", c.IdentPath, err)
	}
	var recipients []age.Recipient
	if len(c.Recipients) > 0 {
		recipients, err = age.ParseRecipients(strings.NewReader(strings.Join(c.Recipients, "\n")))
		if err != nil {
			return nil, fmt.Errorf("error parsing age recipients: %w", err)
		}
	}
	return NewAgeSourceFromKeys(idents, recipients)
}

// NewAgeSourceFromKeys builds a source from already parsed keys. When no
// recipients are given, tables are encrypted to the X25519 identities.
func NewAgeSourceFromKeys(idents []age.Identity, recipients []age.Recipient) (*AgeSource, error) {
	if len(idents) == 0 {
		return nil, errors.New("need at least one identity")
	}
	if len(recipients) == 0 {
		for _, id := range idents {
			if x, ok := id.(*age.X25519Identity); ok {
				recipients = append(recipients, x.Recipient())
			}
		}
	}
	return &AgeSource{identities: idents, recipients: recipients}, nil
}

type decryptedFile struct {
	io.Reader
	file *os.File
}

func (d decryptedFile) Close() error { return d.file.Close() }

func (a *AgeSource) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	decrypted, err := age.Decrypt(file, a.identities...)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error decrypting age file %v: %w", path, err)
	}
	log.Debugf("decrypted age table %v", path)
	return decryptedFile{Reader: decrypted, file: file}, nil
}

type encryptedFile struct {
	io.WriteCloser
	file *os.File
}

func (e encryptedFile) Close() error {
	err := e.WriteCloser.Close()
	if cerr := e.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *AgeSource) Create(path string) (io.WriteCloser, error) {
	if len(a.recipients) == 0 {
		return nil, fmt.Errorf("no age recipients for %v: %w", path, source.ErrReadOnly)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := age.Encrypt(file, a.recipients...)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error encrypting age file %v: %w", path, err)
	}
	return encryptedFile{WriteCloser: w, file: file}, nil
}

func (a *AgeSource) Kind() string { return source.KindAge }
