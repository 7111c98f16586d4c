package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	applog "bazaar/internal/log"
)

// SeedPassword is the password of every seeded user.
const SeedPassword = "Passw0rd!"

// Seed inserts demo data when the catalog is empty. Safe to run on every start.
func Seed(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := seed(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func seed(ctx context.Context, tx *sqlx.Tx) error {
	applog.L().Info().Str("action", "store.seed").Msg("inserting demo catalog")

	stmts := []string{
		`INSERT INTO categories(id,name,description,parent_id,created_at) VALUES
		  (1,'Home','Everything for the home',NULL,'2024-01-01 09:00:00'),
		  (2,'Furniture','Tables, chairs and storage',1,'2024-01-01 09:00:00'),
		  (3,'Chairs','Seating of every kind',2,'2024-01-01 09:00:00'),
		  (4,'Lighting','Lamps and fixtures',1,'2024-01-01 09:00:00')`,

		`INSERT INTO products(id,name,description,image_path,price,category_id,created_at) VALUES
		  (1,'Oak Dining Chair','Solid oak chair with a woven seat.','/images/image1.jpg',4800,3,'2024-02-01 10:00:00'),
		  (2,'Oak Dining Table','Solid oak table that seats six.','/images/image2.jpg',21000,2,'2024-02-01 10:05:00'),
		  (3,'Brass Desk Lamp','Adjustable brass lamp with a linen shade.','/images/image3.jpg',6500,4,'2024-02-02 11:00:00'),
		  (4,'Brass Floor Lamp','Tall brass lamp with a linen shade.','/images/image4.jpg',9800,4,'2024-02-02 11:10:00'),
		  (5,'Pine Bookshelf','Five shelves of untreated pine.','/images/image0.jpg',7200,2,'2024-02-03 12:00:00'),
		  (6,'Oak Rocking Chair','Steam-bent oak rocker.','/images/image1.jpg',15500,3,'2024-02-04 08:30:00'),
		  (7,'Wool Throw','Heavy wool throw in slate grey.','/images/image2.jpg',3900,1,'2024-02-05 14:00:00'),
		  (8,'Ceramic Vase','Hand thrown stoneware vase.','/images/image3.jpg',2400,NULL,'2024-02-06 15:45:00')`,

		`INSERT INTO stocks(product_id,quantity,operation) VALUES
		  (1,20,'add'),(1,3,'remove'),(2,5,'add'),(3,12,'add'),(3,12,'remove'),
		  (4,8,'add'),(5,10,'add'),(6,2,'add'),(6,3,'remove'),(7,30,'add'),(8,15,'add')`,

		`INSERT INTO product_ratings(product_id,user_id,rating) VALUES
		  (1,1,5),(1,2,4),(1,3,4),(2,1,3),(3,2,5),(4,3,2),(4,1,3),(6,2,5)`,

		`INSERT INTO favorites(product_id,user_id) VALUES (1,2),(3,1),(3,2),(6,3)`,

		`INSERT INTO histories(product_id,user_id,created_at) VALUES
		  (1,1,'2024-03-01 10:00:00'),(3,1,'2024-03-02 10:00:00'),(6,2,'2024-03-03 10:00:00')`,

		`INSERT INTO tags(id,name) VALUES (1,'oak'),(2,'brass'),(3,'handmade'),(4,'sale')`,
		`INSERT INTO product_tags(product_id,tag_id) VALUES
		  (1,1),(1,3),(2,1),(3,2),(4,2),(4,4),(6,1),(6,3),(8,3)`,

		`INSERT INTO price_history(product_id,price) VALUES
		  (1,5200),(1,4800),(2,21000),(3,7000),(3,6100),(4,9800),(6,15500),(6,14900)`,

		`INSERT INTO comments(product_id,user_id,content,created_at) VALUES
		  (1,2,'Sturdy and comfortable.','2024-03-05 09:00:00'),
		  (1,3,'Arrived with a bad scratch, otherwise fine.','2024-03-06 09:00:00'),
		  (3,1,'Great light for reading.','2024-03-07 09:00:00'),
		  (6,1,'Pure spam, ignore the reviews above.','2024-03-08 09:00:00')`,
	}

	for i, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("seed statement %d: %w", i, err)
		}
	}

	h, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, u := range []struct {
		id          int64
		name, email string
	}{
		{1, "Alice", "alice@bazaar.test"},
		{2, "Bob", "bob@bazaar.test"},
		{3, "Carol", "carol@bazaar.test"},
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users(id,name,email,password_hash) VALUES(?,?,?,?)`,
			u.id, u.name, u.email, string(h)); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}
	return nil
}
