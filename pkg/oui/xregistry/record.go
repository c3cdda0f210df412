package xregistry

// Record 是注册表中的一个 MA-L 厂商条目。
//
// MAC 为大写冒号格式的 3 字节前缀（如 "30:23:03"），
// CompanyID 为同一前缀的 6 位十六进制形式（如 "302303"），两者编码相同的 24 位。
// Record 由解析器创建后不再修改。
type Record struct {
	MAC          string `json:"mac"`
	CompanyID    string `json:"company_id"`
	Organization string `json:"organization"`
	Address      string `json:"address"`
}
