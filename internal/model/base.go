package model

import "time"

// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UnorderedSentinel orden 为空时的排序值，排在最后
const UnorderedSentinel = 9999

func OrderKey(order *int) int {
	if order == nil {
		return UnorderedSentinel
	}
	return *order
}
