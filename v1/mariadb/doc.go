// Package mariadb provides the MariaDB/MySQL dialect of the database facade.
//
// Select it with database.Config{Type: "mariadb"} (or "mysql"):
//
//	cfg := database.Config{
//		Type:       "mariadb",
//		Address:    "tcp(localhost:3306)/app",
//		Username:   "app",
//		Password:   "secret",
//		Charset:    "utf8mb4",
//		Attributes: map[string]string{"timeout": "5s", "readTimeout": "30s"},
//	}
//
// RETURNING requires MariaDB 10.5 or later; MySQL does not support it.
//
// Row-level locking requires InnoDB and an explicit transaction
// (DB.StartTransaction); with autocommit the locks have no effect.
package mariadb
