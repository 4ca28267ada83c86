package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Creates the tables this module owns. Cart, order, and customer tables
// belong to the host application and are assumed to exist.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS rsvp (
	  id VARCHAR(64) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  is_attending TINYINT(1) NOT NULL DEFAULT 0,
	  amount_of_guests INT NOT NULL DEFAULT 0,
	  customer_id VARCHAR(64) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_rsvp_customer_id (customer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS idempotency_keys (
	  id CHAR(36) NOT NULL,
	  request_path VARCHAR(255) NOT NULL,
	  idempotency_key VARCHAR(128) NOT NULL,
	  response_code INT NOT NULL DEFAULT 0,
	  response_body JSON NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_idempotency_keys_path_key (request_path, idempotency_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS cart_payments (
	  id CHAR(36) NOT NULL,
	  cart_id CHAR(36) NOT NULL,
	  order_id CHAR(36) NULL,
	  provider VARCHAR(64) NOT NULL,
	  session_data_json JSON NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_cart_payments_cart_id (cart_id),
	  KEY ix_cart_payments_order_id (order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ rsvp table created successfully")
	log.Println("✓ idempotency_keys table created successfully")
	log.Println("✓ cart_payments table created successfully")
}
