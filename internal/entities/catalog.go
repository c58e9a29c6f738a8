package entities

import "time"

// Author is a person shared by any number of books. Logical identity is the
// case-insensitive (surname, given name) pair; no uniqueness constraint is
// enforced at the schema level.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Surname   string    `gorm:"index;size:256" json:"surname"`
	GivenName string    `gorm:"size:256" json:"given_name"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher is optional on a book. Logical identity is the case-insensitive
// (name, city) pair.
type Publisher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	City      string    `gorm:"size:256" json:"city"`
	Books     []Book    `gorm:"foreignKey:PublisherID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Genre is linked to books many-to-many via the book_genres table.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is the aggregate root: one mandatory author, at most one publisher,
// a 1:1 detail row and any number of genre links.
type Book struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"index;size:512" json:"title"`
	Year        *int        `json:"year,omitempty"`
	PageCount   *int        `json:"page_count,omitempty"`
	AuthorID    uint        `gorm:"index" json:"author_id"`
	PublisherID *uint       `gorm:"index" json:"publisher_id,omitempty"`
	Author      Author      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Publisher   *Publisher  `gorm:"foreignKey:PublisherID" json:"publisher,omitempty"`
	Detail      *BookDetail `gorm:"foreignKey:BookID" json:"detail,omitempty"`
	Genres      []Genre     `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BookDetail holds the free-text description and the relative path of the
// cover file on disk. Exactly one row per book, created on first save.
type BookDetail struct {
	BookID      uint   `gorm:"primaryKey" json:"book_id"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	CoverPath   string `gorm:"size:1024" json:"cover_path,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

func (Publisher) TableName() string {
	return "publishers"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookDetail) TableName() string {
	return "book_details"
}
