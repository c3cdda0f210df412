// Package xlookup 提供 MAC 地址厂商查询服务。
//
// 查询流程：
//  1. 宽松解析输入（每组 1~2 位十六进制，6 组），失败返回 [NoMatch]
//  2. 本地管理（私有）地址直接返回 [KindPrivate]，不访问存储与网络
//  3. 存储未加载时先读记录缓存，缺失或损坏时下载注册表
//  4. 按前缀精确匹配，命中返回 [KindVendor]，否则 [NoMatch]
//
// 刷新类操作使用 singleflight 去重，在独立于调用方取消的 ctx 中执行，
// 受 RefreshTimeout 约束。刷新失败不影响已加载的快照。
//
// # 使用示例
//
//	svc, err := xlookup.New(
//		xlookup.WithCache(cache),
//		xlookup.WithMemo(4096, 10*time.Minute),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	r := svc.Lookup(ctx, "30:23:03:3A:F3:01")
//	if rec, ok := r.Vendor(); ok {
//		fmt.Println(rec.Organization, rec.Address)
//	}
package xlookup
