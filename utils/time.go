package utils

import "time"

// AlmatyTime возвращает текущее время в часовом поясе Алматы
func AlmatyTime() time.Time {
	// Казахстан: UTC+5 (с 2024 года единый пояс без перехода)
	almatyLocation, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		return time.Now().UTC().Add(5 * time.Hour)
	}
	return time.Now().In(almatyLocation)
}
