package credential

import "errors"

var (
	// ErrCredentialNotFound возвращается, когда живого кода доступа
	// для записи не существует
	ErrCredentialNotFound = errors.New("credential.repository: credential not found")

	// ErrAlreadyIssued возвращается при попытке выпустить второй код
	// для одной и той же записи
	ErrAlreadyIssued = errors.New("credential.repository: credential already issued for reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("credential.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("credential.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("credential.repository: failed to scan row")
)
