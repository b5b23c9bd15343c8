package password

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt behind the two operations the auth core needs.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

func (h *Hasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether secret matches the stored hash. Mismatches and
// malformed hashes both come back false; the caller never sees why.
func (h *Hasher) Compare(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
