// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и возвращать клиенту корректный HTTP-статус с понятным сообщением.
package common

import "errors"

// Ошибки аутентификации
var (
	// ErrInvalidCredentials — неверный логин или пароль.
	// Одно сообщение на оба случая, чтобы не раскрывать существование аккаунта.
	ErrInvalidCredentials = errors.New("неверные учетные данные")
	// ErrUsernameTaken — имя пользователя уже занято
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
	// ErrAccountNotActive — аккаунт заблокирован или неактивен
	ErrAccountNotActive = errors.New("аккаунт неактивен, обратитесь в поддержку")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки экономики (балансы, покупки)
var (
	// ErrInsufficientBalance — недостаточно средств или нет баланса в этой валюте
	ErrInsufficientBalance = errors.New("недостаточно средств или неверный тип валюты")
	// ErrAlreadyOwned — asset уже есть в инвентаре покупателя
	ErrAlreadyOwned = errors.New("этот asset уже есть в вашем инвентаре")
	// ErrAssetUnavailable — asset не найден либо не одобрен для продажи
	ErrAssetUnavailable = errors.New("asset не найден или недоступен для приобретения")
	// ErrCurrencyNotFound — тип валюты не найден
	ErrCurrencyNotFound = errors.New("тип валюты не найден")
)

// Ошибки UGC (загрузка и приобретение ассетов)
var (
	// ErrPlanNotFound — у пользователя нет тарифного плана
	ErrPlanNotFound = errors.New("пользователь или тарифный план не найден")
	// ErrAssetLimitReached — достигнут лимит ассетов по тарифному плану
	ErrAssetLimitReached = errors.New("достигнут лимит ассетов вашего тарифного плана")
	// ErrAssetQualityExceeded — asset превышает лимиты качества плана
	ErrAssetQualityExceeded = errors.New("asset превышает лимиты качества (полигоны/размер) вашего плана")
	// ErrInventoryFull — инвентарь заполнен до лимита плана
	ErrInventoryFull = errors.New("инвентарь заполнен, удалите ассеты чтобы приобрести новые")
	// ErrAssetNotFound — мастер-ассет не найден
	ErrAssetNotFound = errors.New("asset не найден")
)

// Ошибки миров
var (
	// ErrWorldConfigNotFound — конфигурация мира не найдена
	ErrWorldConfigNotFound = errors.New("конфигурация мира не найдена")
	// ErrInstanceNotFound — инстанция мира не найдена (возможно, снята с регистрации)
	ErrInstanceNotFound = errors.New("инстанция мира не найдена")
	// ErrNoCapacity — нет инстанций со свободными местами
	ErrNoCapacity = errors.New("нет доступных серверов для этого мира")
	// ErrNegativePlayerCount — отрицательное число игроков в heartbeat
	ErrNegativePlayerCount = errors.New("число игроков не может быть отрицательным")
)

// Ошибки аватаров
var (
	// ErrAvatarConfigNotFound — конфигурация аватара не найдена у этого пользователя.
	// Одна и та же ошибка для «нет такой» и «чужая», чтобы не раскрывать существование.
	ErrAvatarConfigNotFound = errors.New("конфигурация аватара не найдена")
	// ErrInventoryNotOwned — предмет инвентаря не принадлежит пользователю
	ErrInventoryNotOwned = errors.New("предмет инвентаря вам не принадлежит")
)

// Ошибки друзей
var (
	// ErrSelfFriendRequest — попытка отправить заявку самому себе
	ErrSelfFriendRequest = errors.New("нельзя отправить заявку самому себе")
	// ErrFriendshipExists — связь между пользователями уже есть
	ErrFriendshipExists = errors.New("заявка или дружба уже существует")
	// ErrFriendshipNotFound — связь не найдена
	ErrFriendshipNotFound = errors.New("дружба или заявка не найдена")
)

// Общие ошибки
var (
	// ErrValidation — некорректные или неполные параметры запроса
	ErrValidation = errors.New("некорректные параметры запроса")
	// ErrRowInUse — запись нельзя удалить, на неё ссылаются другие таблицы
	ErrRowInUse = errors.New("запись используется и не может быть удалена")
	// ErrDuplicate — запись с таким именем/ключом уже существует
	ErrDuplicate = errors.New("такая запись уже существует")
	// ErrNotFound — универсальная «не найдено» для CRUD-операций
	ErrNotFound = errors.New("запись не найдена")
)
