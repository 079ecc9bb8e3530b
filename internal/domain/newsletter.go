package domain

// Subscriber — подписчик рассылки. Для доставки нужен только email.
type Subscriber struct {
	Email string `json:"email"`
}

// Author — автор рассылки.
type Author struct {
	Name string `json:"name"`
}
