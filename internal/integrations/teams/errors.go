package teams

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, сеть, токен)
	ErrInternal = errors.New("teams client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Graph API
	ErrInvalidResponse = errors.New("teams client: invalid response")

	// ErrUnauthorized возвращается, когда Graph API отклонил токен приложения
	ErrUnauthorized = errors.New("teams client: unauthorized")

	// ErrNoJoinURL возвращается, когда событие создано, но ссылка на встречу отсутствует
	ErrNoJoinURL = errors.New("teams client: event has no online meeting join url")
)
