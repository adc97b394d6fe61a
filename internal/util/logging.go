package util

import (
	"fmt"
	"log"
)

// LogError пишет ошибку в лог оператора и возвращает её обёрнутой для вызывающего.
// Внутренние подробности остаются в логе, наружу уходит только обёртка.
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}
