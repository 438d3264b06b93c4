package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const paymentIDPrefix = "cko_"

// UUIDGenerator mints process-unique payment identifiers of the form
// cko_<32 hex chars>.
type UUIDGenerator struct{}

func New() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) Generate() string {
	return paymentIDPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}
