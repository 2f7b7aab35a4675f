package deedmarket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/deedmarket/deedmarket/common"
	"github.com/deedmarket/deedmarket/schema"
	"github.com/gin-gonic/gin"
)

func (s *Deedmarket) runAPI(port string) {
	r := s.engine
	r.Use(common.CORSMiddleware())
	if s.config.GetServeLimit() > 0 {
		r.Use(common.LimiterMiddleware(s.config.GetServeLimit(), "M", s.config.GetIPWhiteList()))
	}
	v1 := r.Group("/")
	{
		v1.POST("/asset/mint", s.mintAsset)
		v1.GET("/asset/:id", s.getAsset)
		v1.GET("/asset/:id/rented", s.getRented)
		v1.GET("/asset/:id/owner", s.getOwner)

		v1.POST("/asset/:id/sale", s.listForSale)
		v1.POST("/asset/:id/offer", s.makeOffer)
		v1.POST("/asset/:id/offer/accept", s.acceptOffer)
		v1.POST("/asset/:id/offer/withdraw", s.withdrawOffer)
		v1.GET("/asset/:id/offers", s.getOffers)
		v1.GET("/asset/:id/offer/:account", s.getOffer)

		v1.POST("/asset/:id/rent/list", s.listForRent)
		v1.POST("/asset/:id/rent", s.rentAsset)
		v1.POST("/asset/:id/rent/extend", s.extendRental)

		v1.POST("/asset/:id/auction", s.startAuction)
		v1.POST("/asset/:id/auction/bid", s.placeBid)
		v1.POST("/asset/:id/auction/end", s.endAuction)
		v1.GET("/asset/:id/auction", s.getAuction)

		v1.POST("/asset/:id/manager", s.setManager)
		v1.GET("/asset/:id/manager", s.getManager)

		v1.POST("/ledger/deposit", s.deposit)
		v1.GET("/ledger/:account", s.getBalance)

		v1.GET("/events", s.getEvents)
		v1.GET("/events/:id", s.getAssetEvents)
		v1.GET("/info", s.getInfo)
	}

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (s *Deedmarket) mintAsset(c *gin.Context) {
	req := schema.MintReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	id, err := s.Mint(req.Caller, req.To, req.Location, req.Area, req.Category)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespAssetId{AssetId: id})
}

func (s *Deedmarket) getAsset(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	// short-lived cache in front of the hot details read
	cacheKey := "property-" + c.Param("id")
	if data, err := s.detailsCache.Get(cacheKey); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}
	prop, err := s.GetDetails(id)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	data, err := json.Marshal(&prop)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	if err := s.detailsCache.Set(cacheKey, data); err != nil {
		log.Warn("cache property details failed", "err", err, "assetId", id)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Deedmarket) getRented(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	rented, err := s.IsRented(id)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespRented{AssetId: id, Rented: rented})
}

func (s *Deedmarket) getOwner(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	owner, err := s.titles.OwnerOf(id)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespOwner{AssetId: id, Owner: owner})
}

func (s *Deedmarket) listForSale(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.ListSaleReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ListForSale(id, req.Caller, req.Price); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) makeOffer(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.OfferReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.MakeOffer(id, req.Caller, req.Amount); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) acceptOffer(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.AcceptOfferReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.AcceptOffer(id, req.Caller, req.Buyer); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) withdrawOffer(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.WithdrawOfferReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.WithdrawOffer(id, req.Caller); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) getOffers(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	offers, err := s.Offers(id)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (s *Deedmarket) getOffer(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	offer, err := s.Offer(id, c.Param("account"))
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (s *Deedmarket) listForRent(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.ListRentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ListForRent(id, req.Caller, req.MonthlyRent); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) rentAsset(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.RentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.RentProperty(id, req.Caller, req.Months, req.Amount); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) extendRental(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.ExtendRentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ExtendRental(id, req.Caller, req.AdditionalMonths, req.Amount); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) startAuction(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.StartAuctionReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.StartAuction(id, req.Caller, req.StartPrice, req.Duration); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) placeBid(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.BidReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.PlaceBid(id, req.Caller, req.Amount); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) endAuction(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.EndAuctionReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.EndAuction(id, req.Caller); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) getAuction(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	auction, err := s.AuctionState(id)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, auction)
}

func (s *Deedmarket) setManager(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	req := schema.SetManagerReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.SetManager(id, req.Caller, req.Manager); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) getManager(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	manager, err := s.Manager(id)
	if err != nil {
		opErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespManager{AssetId: id, Manager: manager})
}

func (s *Deedmarket) deposit(c *gin.Context) {
	req := schema.DepositReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ledger.Deposit(req.Account, req.Amount); err != nil {
		opErrorResponse(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Deedmarket) getBalance(c *gin.Context) {
	account := c.Param("account")
	bal, err := s.ledger.Balance(account)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, schema.RespBalance{Account: account, Balance: bal})
}

func (s *Deedmarket) getEvents(c *gin.Context) {
	cursor, num := pageParams(c)
	events, err := s.Events(cursor, num)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Deedmarket) getAssetEvents(c *gin.Context) {
	id, err := assetIdParam(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	cursor, num := pageParams(c)
	events, err := s.AssetEvents(id, cursor, num)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Deedmarket) getInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.GetStats())
}

func assetIdParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func pageParams(c *gin.Context) (uint, int) {
	cursor, err := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 64)
	if err != nil {
		cursor = 0
	}
	num, err := strconv.Atoi(c.DefaultQuery("num", "100"))
	if err != nil || num <= 0 || num > 1000 {
		num = 100
	}
	return uint(cursor), num
}

func opErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schema.ErrNotFound) || errors.Is(err, schema.ErrNotExist):
		c.JSON(http.StatusNotFound, schema.RespErr{Err: err.Error()})
	case errors.Is(err, schema.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, schema.RespErr{Err: err.Error()})
	case errors.Is(err, schema.ErrInvalidArgument) || errors.Is(err, schema.ErrStateConflict) ||
		errors.Is(err, schema.ErrInsufficientPayment) || errors.Is(err, schema.ErrInsufficientBalance):
		errorResponse(c, err.Error())
	default:
		internalErrorResponse(c, err.Error())
	}
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
