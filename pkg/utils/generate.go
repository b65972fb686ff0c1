package utils

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== CONFIRMATION CODE ====================

// GenerateConfirmationCode creates a numeric code of specified length
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	code := ""
	for i := 0; i < length; i++ {
		code += fmt.Sprintf("%d", rand.Intn(10))
	}

	return code
}

// ==================== QUERY PARAMS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
