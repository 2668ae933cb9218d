// Package models содержит структуры обмена с внешним сервисом сокращения ссылок.
package models

// ShortenRequest тело запроса POST {API_BASE_URL}/api/short
type ShortenRequest struct {
	OriginalURL string `json:"originalUrl"`
}

// ShortenResponse тело успешного ответа сервиса сокращения
type ShortenResponse struct {
	MyURL     string `json:"myUrl"`
	QRCodeImg string `json:"qrCodeImg,omitempty"`
}

// ShortenResult представляет результат успешного сокращения, который отображается пользователю.
// QRCodeImg может быть пустым: сервис не обязан возвращать QR-код.
type ShortenResult struct {
	ShortURL  string `json:"short_url"`
	QRCodeImg string `json:"qr_code_img,omitempty"`
}

// Result переводит ответ сервиса во внутреннее представление
func (r ShortenResponse) Result() ShortenResult {
	return ShortenResult{
		ShortURL:  r.MyURL,
		QRCodeImg: r.QRCodeImg,
	}
}
