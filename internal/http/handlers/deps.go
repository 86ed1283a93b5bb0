package handlers

import (
	"stockroom/internal/repos"
	"stockroom/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler        *AuthHandler
	ItemHandler        *ItemHandler
	CategoryHandler    *CategoryHandler
	LocationHandler    *LocationHandler
	TransactionHandler *TransactionHandler
	RequestHandler     *RequestHandler
	UserHandler        *UserHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	itemRepo := repos.NewItemRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	locRepo := repos.NewLocationRepo(db)
	txRepo := repos.NewTransactionRepo(db)
	reqRepo := repos.NewRequestRepo(db)
	userRepo := repos.NewUserRepo(db)
	seqRepo := repos.NewSequenceRepo(db)

	itemSvc := services.NewItemService(itemRepo, catRepo, locRepo, seqRepo)
	catSvc := services.NewCategoryService(catRepo)
	locSvc := services.NewLocationService(locRepo, seqRepo)
	ledgerSvc := services.NewLedgerService(txRepo)
	reqSvc := services.NewRequestService(reqRepo, itemRepo, seqRepo)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		AuthHandler:        &AuthHandler{Auth: auth},
		ItemHandler:        &ItemHandler{Items: itemSvc},
		CategoryHandler:    &CategoryHandler{Categories: catSvc},
		LocationHandler:    &LocationHandler{Locations: locSvc},
		TransactionHandler: &TransactionHandler{Ledger: ledgerSvc},
		RequestHandler:     &RequestHandler{Requests: reqSvc},
		UserHandler:        &UserHandler{Users: userSvc},
	}
}
