package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"auth-web-server/config"
	"auth-web-server/internal/util"
)

// refreshKeyPrefix : пространство ключей refresh-токенов в Redis
const refreshKeyPrefix = "auth:refresh:"

// SessionRepository хранит по одному актуальному refresh-токену на
// пользователя. TTL записи равен времени жизни самого refresh-токена.
type SessionRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewSessionRepository(rdb *config.RedisClient, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: rdb, ttl: ttl}
}

// Set : безусловно перезаписывает refresh-токен пользователя.
// Порядок при гонке двух ротаций — последняя запись выигрывает.
// Ошибка записи отдается наверх: логин или ротация без опубликованной
// сессии завершиться успехом не должны.
func (r *SessionRepository) Set(ctx context.Context, username, refreshToken string) error {
	if err := r.client.Client.Set(ctx, r.key(username), refreshToken, r.ttl).Err(); err != nil {
		return util.LogError("ошибка записи refresh-токена в Redis", err)
	}
	return nil
}

// Get : возвращает актуальный refresh-токен пользователя.
// Отсутствие записи и недоступность Redis неразличимы для вызывающего:
// и то и другое — "сессии нет", попытка обновления закроется отказом.
func (r *SessionRepository) Get(ctx context.Context, username string) (string, error) {
	val, err := r.client.Client.Get(ctx, r.key(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		log.Printf("ошибка чтения refresh-токена из Redis: %v", err)
		return "", nil
	}
	return val, nil
}

// Delete : удаляет запись сессии, удаление отсутствующего ключа — не ошибка.
// Недоступность Redis при logout только логируется: запись и так умрёт по TTL.
func (r *SessionRepository) Delete(ctx context.Context, username string) error {
	if err := r.client.Client.Del(ctx, r.key(username)).Err(); err != nil {
		log.Printf("ошибка удаления refresh-токена из Redis: %v", err)
	}
	return nil
}

func (r *SessionRepository) key(username string) string {
	return refreshKeyPrefix + username
}
