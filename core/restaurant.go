package core

// Restaurant 是持久存储中的餐厅记录，对核心只读。
// 存储适配层负责把松散的行数据校验成这个固定字段集，
// 管道内部不处理任何无类型的行。
type Restaurant struct {
	ID     string
	Lat    float64
	Lon    float64
	Cell   string // 预计算的 H3 cell（固定分辨率），仅由 Lat/Lon 决定
	Vector []float32
}

// UserRecord 是持久存储中的用户记录，预热任务按块流式读取。
type UserRecord struct {
	ID     string
	Vector []float32
}
