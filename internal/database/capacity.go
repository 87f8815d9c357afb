package database

// MessagesTableSize возвращает размер таблицы messages в байтах
// (вместе с индексами и TOAST).
func (d *Database) MessagesTableSize() (int64, error) {
	var size int64
	err := d.db.Raw("SELECT pg_total_relation_size('messages')").Scan(&size).Error
	return size, err
}
