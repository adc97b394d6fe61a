package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры argon2id по умолчанию. Смена любого из них приводит к тому, что
// старые хэши начинают отвечать true на NeedsRehash и прозрачно пересчитываются
// при следующем успешном входе.
const (
	argonMemory      uint32 = 64 * 1024
	argonTime        uint32 = 3
	argonParallelism uint8  = 2
	argonSaltLength  uint32 = 16
	argonKeyLength   uint32 = 32
)

// PasswordHasher : обертка над argon2id с PHC-кодированием хэша.
// Сам по себе побочных эффектов не имеет, пересохранение хэша — забота сервиса.
type PasswordHasher struct {
	memory      uint32
	time        uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		memory:      argonMemory,
		time:        argonTime,
		parallelism: argonParallelism,
		saltLength:  argonSaltLength,
		keyLength:   argonKeyLength,
	}
}

type parsedHash struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

// Hash : хэширует пароль со случайной солью.
// Формат результата: $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.parallelism, h.keyLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// Verify : сверяет пароль с хэшем за константное время.
// Несовпадение и битый хэш неразличимы для вызывающего: и то и другое false.
func (h *PasswordHasher) Verify(encodedHash, password string) bool {
	parsed, err := parseEncodedHash(encodedHash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey(
		[]byte(password), parsed.salt, parsed.time, parsed.memory, parsed.parallelism, uint32(len(parsed.hash)),
	)
	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1
}

// NeedsRehash : true, если параметры в хэше отстали от текущих целевых.
// Битый хэш тоже считается устаревшим.
func (h *PasswordHasher) NeedsRehash(encodedHash string) bool {
	parsed, err := parseEncodedHash(encodedHash)
	if err != nil {
		return true
	}

	return parsed.memory != h.memory ||
		parsed.time != h.time ||
		parsed.parallelism != h.parallelism ||
		uint32(len(parsed.hash)) != h.keyLength
}

func parseEncodedHash(encodedHash string) (*parsedHash, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, fmt.Errorf("неверный формат хэша")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("неподдерживаемая версия argon2")
	}

	parsed := &parsedHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &parsed.memory, &parsed.time, &parsed.parallelism); err != nil {
		return nil, fmt.Errorf("неверные параметры хэша")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("неверная кодировка соли")
	}
	parsed.salt = salt

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, fmt.Errorf("неверная кодировка хэша")
	}
	parsed.hash = hash

	return parsed, nil
}
