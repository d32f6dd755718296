package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strconv"
	"strings"
	"time"
)

// BusinessType is the role prefix carried by a member's business id
type BusinessType string

const (
	MarketerType    BusinessType = "MKT"
	DistributorType BusinessType = "DST"
	AdminType       BusinessType = "ADM"
)

// GenerateBusinessID generates a business id for the given role.
// Format: {TYPE}{TIMESTAMP} where TIMESTAMP is the current Unix millisecond
// count in uppercase base36. Example: MKTLX2P4Q9A
func GenerateBusinessID(entityType BusinessType) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return string(entityType) + strings.ToUpper(ts)
}

// GenerateMarketerBusinessID generates a business id for a marketer
func GenerateMarketerBusinessID() string {
	return GenerateBusinessID(MarketerType)
}

// GenerateReferralCode generates a shareable referral code for a member.
// Format: {TYPE}-{RANDOM} where RANDOM is 6 alphanumeric characters.
// Example: MKT-ABC123
func GenerateReferralCode(entityType BusinessType) (string, error) {
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	// Base32 keeps the code unambiguous to read aloud
	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = strings.ToUpper(randomStr[:6])

	return string(entityType) + "-" + randomStr, nil
}
