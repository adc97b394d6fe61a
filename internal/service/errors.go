package service

import "errors"

var (
	// ErrValidation : входные данные не прошли проверку до обращения к хранилищам
	ErrValidation = errors.New("некорректные входные данные")
	// ErrUserExists : пользователь с таким username или email уже существует
	ErrUserExists = errors.New("пользователь с таким username или email уже существует")
)
