package availability

import "errors"

// ErrInternal возвращается при ошибках чтения хранилища
var ErrInternal = errors.New("availability: internal error")
