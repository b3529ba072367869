package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cydxin/read-receipt-sdk/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// 打印已读相关字段（status/read_at）的 GORM 解析结果和库里的实际列，排查 schema 不一致。
//
// Usage:
//
//	set RECEIPT_DSN=user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=true&loc=Local
//	go run .\scripts\print_gorm_schema.go
func main() {
	dsn := os.Getenv("RECEIPT_DSN")
	if dsn == "" {
		log.Fatal("RECEIPT_DSN is empty")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&models.Message{}); err != nil {
		log.Fatalf("parse message: %v", err)
	}

	for _, name := range []string{"Status", "ReadAt"} {
		f := stmt.Schema.FieldsByName[name]
		if f == nil {
			log.Fatalf("%s field not found, fields=%v", name, keysByName(stmt.Schema.FieldsByName))
		}

		// GORM field metadata
		fmt.Printf("=== GORM Parsed Field %s ===\n", name)
		fmt.Printf("DBName=%s\n", f.DBName)
		fmt.Printf("DataType=%s\n", f.DataType)
		fmt.Printf("Tag=%s\n", f.Tag.Get("gorm"))
		// Dialect SQL type (what GORM will use in CREATE TABLE / ALTER TABLE)
		fmt.Printf("SQLType=%s\n", stmt.DB.Dialector.DataTypeOf(f))
	}

	table := stmt.Schema.Table
	fmt.Println("=== Table Name ===")
	fmt.Println(table)

	// Now print actual DB schema
	type col struct {
		Field string
		Type  string
		Null  string
		Key   string
	}
	var cols []col
	// Works on MySQL
	if err := db.Raw("SHOW COLUMNS FROM " + table).Scan(&cols).Error; err != nil {
		fmt.Printf("SHOW COLUMNS FROM %s failed: %v\n", table, err)
		return
	}
	fmt.Printf("=== SHOW COLUMNS FROM %s ===\n", table)
	for _, c := range cols {
		fmt.Printf("%s\t%s\t%s\t%s\n", c.Field, c.Type, c.Null, c.Key)
	}
}

func keysByName(m map[string]*schema.Field) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
