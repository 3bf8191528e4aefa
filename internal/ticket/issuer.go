package ticket

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	prefix      = "TKT"
	suffixRange = 900000
	suffixBase  = 100000
)

// Issuer mints ticket ids of the form "TKT" + six random digits. The id space
// is small, so the store keeps ticket_id as a primary key and the booking
// service retries a bounded number of times when an insert collides.
type Issuer struct{}

func NewIssuer() *Issuer {
	return &Issuer{}
}

func (Issuer) Issue() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(suffixRange))
	if err != nil {
		return "", fmt.Errorf("issue ticket id: %w", err)
	}
	return fmt.Sprintf("%s%d", prefix, n.Int64()+suffixBase), nil
}
