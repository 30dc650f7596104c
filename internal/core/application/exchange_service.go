package application

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tokex-network/tokex-daemon/internal/core/domain"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	"github.com/tokex-network/tokex-daemon/pkg/mathutil"
)

// TokenRequest identifies a token contract in the requests of the service.
type TokenRequest struct {
	AccountID string `json:"account_id"`
	Standard  string `json:"standard"`
}

// ExchangeService is the engine's public surface: it creates exchanges,
// manages resting offers backed by escrowed funds and settles fills against
// them. Every mutating operation is atomic, a failure leaves no partial
// state behind.
type ExchangeService interface {
	// CreateExchange opens a new market for a token pair, seeding it with a
	// first selling offer funded by the creator. Returns the ids of the new
	// exchange and of its first offer.
	CreateExchange(
		ctx context.Context,
		creator string, baseToken, quoteToken TokenRequest,
		initialAmount uint64, price string,
	) (uint64, uint64, error)
	// PlaceSellingOffer rests a new offer selling base token, escrowing
	// amount of base token from the owner.
	PlaceSellingOffer(
		ctx context.Context,
		exchangeID uint64, owner string, amount uint64, price string,
	) (uint64, error)
	// PlaceBuyingOffer rests a new offer buying base token, escrowing
	// amount * price of quote token from the owner.
	PlaceBuyingOffer(
		ctx context.Context,
		exchangeID uint64, owner string, amount uint64, price string,
	) (uint64, error)
	// CancelSellingOffer removes a selling offer of the requester, refunding
	// its remaining escrow.
	CancelSellingOffer(
		ctx context.Context, exchangeID, offerID uint64, requester string,
	) error
	// CancelBuyingOffer removes a buying offer of the requester, refunding
	// its remaining escrow.
	CancelBuyingOffer(
		ctx context.Context, exchangeID, offerID uint64, requester string,
	) error
	// BuyFromOffer fills a selling offer: the buyer pays the offer owner
	// amount * price of quote token and receives amount of base token from
	// escrow.
	BuyFromOffer(
		ctx context.Context, exchangeID, offerID uint64, buyer string, amount uint64,
	) error
	// SellFromOffer fills a buying offer: the seller sends amount of base
	// token to the offer owner and receives amount * price of quote token
	// from escrow.
	SellFromOffer(
		ctx context.Context, exchangeID, offerID uint64, seller string, amount uint64,
	) error
	// GetExchangeByID returns the info of an exchange.
	GetExchangeByID(ctx context.Context, exchangeID uint64) (*ExchangeInfo, error)
	// GetExchangeOffers returns the active offers of an exchange in insertion
	// order.
	GetExchangeOffers(ctx context.Context, exchangeID uint64) ([]OfferInfo, error)
	// ListExchanges returns all exchanges.
	ListExchanges(ctx context.Context) ([]ExchangeInfo, error)
	// CheckEscrow audits the custody of a token: the sum of the escrow
	// entries must equal the engine's balance at the gateway.
	CheckEscrow(ctx context.Context, token TokenRequest) (*EscrowReport, error)
}

type exchangeService struct {
	repoManager   ports.RepoManager
	tokenGateway  ports.TokenGateway
	pubsub        ports.PubSubService
	engineAccount string

	// one guard per exchange, held for the whole duration of a mutating
	// operation so that no gateway callback or concurrent request can observe
	// a half-applied operation.
	locks     map[uint64]*sync.Mutex
	locksLock sync.Mutex
}

// NewExchangeService returns an ExchangeService holding custody of escrowed
// funds on the given engine account.
func NewExchangeService(
	repoManager ports.RepoManager,
	tokenGateway ports.TokenGateway,
	pubsub ports.PubSubService,
	engineAccount string,
) ExchangeService {
	return &exchangeService{
		repoManager:   repoManager,
		tokenGateway:  tokenGateway,
		pubsub:        pubsub,
		engineAccount: engineAccount,
		locks:         map[uint64]*sync.Mutex{},
	}
}

func (s *exchangeService) CreateExchange(
	ctx context.Context,
	creator string, baseToken, quoteToken TokenRequest,
	initialAmount uint64, price string,
) (uint64, uint64, error) {
	base, err := tokenRefFromRequest(baseToken)
	if err != nil {
		return 0, 0, err
	}
	quote, err := tokenRefFromRequest(quoteToken)
	if err != nil {
		return 0, 0, err
	}
	if base.AccountID == quote.AccountID {
		return 0, 0, ErrSameTokenPair
	}
	priceAmount, err := parsePrice(price)
	if err != nil {
		return 0, 0, err
	}

	exchangeID, err := s.repoManager.IdentifierRepository().NextExchangeID(ctx)
	if err != nil {
		return 0, 0, err
	}
	exchange, err := domain.NewExchange(
		exchangeID, creator, base, quote, initialAmount, priceAmount,
	)
	if err != nil {
		return 0, 0, err
	}

	offerID, err := s.repoManager.IdentifierRepository().NextOfferID(ctx)
	if err != nil {
		return 0, 0, err
	}
	offer, err := domain.NewOffer(
		offerID, exchangeID, domain.OfferSideSell, creator, initialAmount, priceAmount,
	)
	if err != nil {
		return 0, 0, err
	}

	// pull the seed funds into custody, a failure aborts before anything is
	// stored
	if err := s.tokenGateway.TransferFrom(
		ctx, base, creator, s.engineAccount, initialAmount,
	); err != nil {
		return 0, 0, err
	}

	if err := s.commitNewOffer(ctx, exchange, offer, base, initialAmount); err != nil {
		s.refundEscrow(ctx, base, creator, initialAmount)
		return 0, 0, err
	}

	s.publish(ExchangeCreatedTopic, ExchangeCreatedEvent{
		ExchangeID: exchangeID,
		OfferID:    offerID,
	})

	log.Debugf(
		"created exchange %d with initial offer %d for creator %s",
		exchangeID, offerID, creator,
	)
	return exchangeID, offerID, nil
}

func (s *exchangeService) PlaceSellingOffer(
	ctx context.Context,
	exchangeID uint64, owner string, amount uint64, price string,
) (uint64, error) {
	return s.placeOffer(ctx, exchangeID, domain.OfferSideSell, owner, amount, price)
}

func (s *exchangeService) PlaceBuyingOffer(
	ctx context.Context,
	exchangeID uint64, owner string, amount uint64, price string,
) (uint64, error) {
	return s.placeOffer(ctx, exchangeID, domain.OfferSideBuy, owner, amount, price)
}

func (s *exchangeService) placeOffer(
	ctx context.Context,
	exchangeID uint64, side int, owner string, amount uint64, price string,
) (uint64, error) {
	priceAmount, err := parsePrice(price)
	if err != nil {
		return 0, err
	}
	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	unlock := s.lockExchange(exchangeID)
	defer unlock()

	exchange, err := s.repoManager.ExchangeRepository().GetExchangeByID(ctx, exchangeID)
	if err != nil {
		return 0, err
	}

	offerID, err := s.repoManager.IdentifierRepository().NextOfferID(ctx)
	if err != nil {
		return 0, err
	}
	offer, err := domain.NewOffer(offerID, exchangeID, side, owner, amount, priceAmount)
	if err != nil {
		return 0, err
	}

	// selling offers escrow base token, buying offers escrow their total
	// quote value
	escrowToken := exchange.BaseToken
	if offer.IsBuy() {
		escrowToken = exchange.QuoteToken
	}
	escrowAmount, err := offer.EscrowAmount()
	if err != nil {
		return 0, err
	}

	if err := s.tokenGateway.TransferFrom(
		ctx, escrowToken, owner, s.engineAccount, escrowAmount,
	); err != nil {
		return 0, err
	}

	if err := s.commitNewOffer(ctx, nil, offer, escrowToken, escrowAmount); err != nil {
		s.refundEscrow(ctx, escrowToken, owner, escrowAmount)
		return 0, err
	}

	s.publish(OfferPlacedTopic, OfferPlacedEvent{OfferID: offerID})

	log.Debugf(
		"placed %s offer %d on exchange %d for owner %s",
		domain.OfferSideString(side), offerID, exchangeID, owner,
	)
	return offerID, nil
}

func (s *exchangeService) CancelSellingOffer(
	ctx context.Context, exchangeID, offerID uint64, requester string,
) error {
	return s.cancelOffer(ctx, exchangeID, offerID, domain.OfferSideSell, requester)
}

func (s *exchangeService) CancelBuyingOffer(
	ctx context.Context, exchangeID, offerID uint64, requester string,
) error {
	return s.cancelOffer(ctx, exchangeID, offerID, domain.OfferSideBuy, requester)
}

func (s *exchangeService) cancelOffer(
	ctx context.Context, exchangeID, offerID uint64, side int, requester string,
) error {
	unlock := s.lockExchange(exchangeID)
	defer unlock()

	exchange, err := s.repoManager.ExchangeRepository().GetExchangeByID(ctx, exchangeID)
	if err != nil {
		return err
	}
	offer, err := s.getExchangeOffer(ctx, exchange.ID, offerID)
	if err != nil {
		return err
	}
	if offer.Side != side {
		return domain.ErrOfferSideMismatch
	}
	if offer.Owner != requester {
		return domain.ErrOfferNotOwned
	}

	refundToken := exchange.BaseToken
	if offer.IsBuy() {
		refundToken = exchange.QuoteToken
	}
	refundAmount, err := offer.EscrowAmount()
	if err != nil {
		return err
	}

	entry, err := s.repoManager.EscrowRepository().GetEntryForOffer(ctx, offerID)
	if err != nil {
		return err
	}

	// remove the offer before releasing funds so that nothing observable
	// through the gateway call refers to a half-cancelled offer
	if err := s.deleteOffer(ctx, offerID); err != nil {
		return err
	}

	if err := s.tokenGateway.Transfer(
		ctx, refundToken, offer.Owner, refundAmount,
	); err != nil {
		// funds never left custody, reinstating the offer restores the exact
		// previous state
		s.reinstateOffer(ctx, offer, entry)
		return err
	}

	s.publish(OfferCanceledTopic, OfferCanceledEvent{
		ExchangeID: exchangeID,
		OfferID:    offerID,
	})

	log.Debugf(
		"canceled %s offer %d on exchange %d, refunded %d to %s",
		domain.OfferSideString(side), offerID, exchangeID, refundAmount, offer.Owner,
	)
	return nil
}

func (s *exchangeService) BuyFromOffer(
	ctx context.Context, exchangeID, offerID uint64, buyer string, amount uint64,
) error {
	return s.fillOffer(ctx, exchangeID, offerID, domain.OfferSideSell, buyer, amount)
}

func (s *exchangeService) SellFromOffer(
	ctx context.Context, exchangeID, offerID uint64, seller string, amount uint64,
) error {
	return s.fillOffer(ctx, exchangeID, offerID, domain.OfferSideBuy, seller, amount)
}

// fillOffer settles a discrete fill against a resting offer. For a selling
// offer the taker is a buyer paying the offer owner in quote token and
// receiving base token from escrow, for a buying offer the taker is a seller
// sending base token to the offer owner and receiving quote token from
// escrow.
func (s *exchangeService) fillOffer(
	ctx context.Context, exchangeID, offerID uint64, side int,
	taker string, amount uint64,
) error {
	if taker == "" {
		return domain.ErrInvalidOwner
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	unlock := s.lockExchange(exchangeID)
	defer unlock()

	exchange, err := s.repoManager.ExchangeRepository().GetExchangeByID(ctx, exchangeID)
	if err != nil {
		return err
	}
	offer, err := s.getExchangeOffer(ctx, exchange.ID, offerID)
	if err != nil {
		return err
	}
	if offer.Side != side {
		return domain.ErrOfferSideMismatch
	}
	if amount > offer.RemainingAmount {
		return domain.ErrInsufficientOfferAmount
	}

	total, err := offer.Payment(amount)
	if err != nil {
		return err
	}

	// the taker funds the payment leg, the escrow funds the release leg
	paymentToken, releaseToken := exchange.QuoteToken, exchange.BaseToken
	paymentAmount, releaseAmount := total, amount
	if offer.IsBuy() {
		paymentToken, releaseToken = exchange.BaseToken, exchange.QuoteToken
		paymentAmount, releaseAmount = amount, total
	}

	entry, err := s.repoManager.EscrowRepository().GetEntryForOffer(ctx, offerID)
	if err != nil {
		return err
	}

	// commit the decrement before any gateway call
	updatedOffer := *offer
	if err := updatedOffer.Fill(amount); err != nil {
		return err
	}
	if err := s.commitFill(ctx, &updatedOffer, releaseAmount); err != nil {
		return err
	}

	// the taker pays the offer owner directly, the owner never escrowed the
	// payment side
	if err := s.tokenGateway.TransferFrom(
		ctx, paymentToken, taker, offer.Owner, paymentAmount,
	); err != nil {
		s.rollbackFill(ctx, offer, &updatedOffer, entry)
		return err
	}

	// release from custody, backed by the escrow ledger
	if err := s.tokenGateway.Transfer(
		ctx, releaseToken, taker, releaseAmount,
	); err != nil {
		s.rollbackFill(ctx, offer, &updatedOffer, entry)
		log.WithError(err).Errorf(
			"escrow release failed after payment for offer %d, custody of %s requires reconciliation",
			offerID, releaseToken.AccountID,
		)
		return err
	}

	s.publish(OfferFilledTopic, OfferFilledEvent{
		ExchangeID:      exchangeID,
		OfferID:         offerID,
		Side:            domain.OfferSideString(side),
		Taker:           taker,
		Amount:          amount,
		Price:           offer.Price,
		Total:           total,
		RemainingAmount: updatedOffer.RemainingAmount,
	})

	log.Debugf(
		"filled %s offer %d on exchange %d for %d units, %d remaining",
		domain.OfferSideString(side), offerID, exchangeID, amount,
		updatedOffer.RemainingAmount,
	)
	return nil
}

func (s *exchangeService) GetExchangeByID(
	ctx context.Context, exchangeID uint64,
) (*ExchangeInfo, error) {
	exchange, err := s.repoManager.ExchangeRepository().GetExchangeByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	info := exchangeInfoFromExchange(exchange)
	return &info, nil
}

func (s *exchangeService) GetExchangeOffers(
	ctx context.Context, exchangeID uint64,
) ([]OfferInfo, error) {
	if _, err := s.repoManager.ExchangeRepository().GetExchangeByID(
		ctx, exchangeID,
	); err != nil {
		return nil, err
	}

	offers, err := s.repoManager.OfferRepository().GetOffersForExchange(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	infos := make([]OfferInfo, 0, len(offers))
	for i := range offers {
		infos = append(infos, offerInfoFromOffer(&offers[i]))
	}
	return infos, nil
}

func (s *exchangeService) ListExchanges(ctx context.Context) ([]ExchangeInfo, error) {
	exchanges, err := s.repoManager.ExchangeRepository().GetAllExchanges(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]ExchangeInfo, 0, len(exchanges))
	for i := range exchanges {
		infos = append(infos, exchangeInfoFromExchange(&exchanges[i]))
	}
	return infos, nil
}

func (s *exchangeService) CheckEscrow(
	ctx context.Context, token TokenRequest,
) (*EscrowReport, error) {
	tokenRef, err := tokenRefFromRequest(token)
	if err != nil {
		return nil, err
	}

	entries, err := s.repoManager.EscrowRepository().GetEntriesForToken(ctx, tokenRef)
	if err != nil {
		return nil, err
	}

	var total uint64
	for _, entry := range entries {
		total, err = mathutil.CheckedAdd(total, entry.Amount)
		if err != nil {
			return nil, err
		}
	}

	balance, err := s.tokenGateway.BalanceOf(ctx, tokenRef, s.engineAccount)
	if err != nil {
		return nil, err
	}

	return &EscrowReport{
		Token:          tokenInfoFromRef(tokenRef),
		ActiveOffers:   len(entries),
		TotalEscrowed:  total,
		GatewayBalance: balance,
		Balanced:       total == balance,
	}, nil
}

// getExchangeOffer returns the offer only if it belongs to the given
// exchange.
func (s *exchangeService) getExchangeOffer(
	ctx context.Context, exchangeID, offerID uint64,
) (*domain.Offer, error) {
	offer, err := s.repoManager.OfferRepository().GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.ExchangeID != exchangeID {
		return nil, domain.ErrOfferNotFound
	}
	return offer, nil
}

// commitNewOffer stores a freshly escrowed offer, optionally along with the
// exchange it seeds.
func (s *exchangeService) commitNewOffer(
	ctx context.Context,
	exchange *domain.Exchange, offer *domain.Offer,
	escrowToken domain.TokenRef, escrowAmount uint64,
) error {
	if exchange != nil {
		if err := s.repoManager.ExchangeRepository().AddExchange(ctx, exchange); err != nil {
			return err
		}
	}
	if err := s.repoManager.OfferRepository().AddOffer(ctx, offer); err != nil {
		return err
	}
	return s.repoManager.EscrowRepository().AddEntry(ctx, &domain.EscrowEntry{
		OfferID: offer.ID,
		Token:   escrowToken,
		Amount:  escrowAmount,
	})
}

// commitFill stores the decremented offer, removing it from the book once
// fully filled, and reduces its escrow entry accordingly.
func (s *exchangeService) commitFill(
	ctx context.Context, offer *domain.Offer, releasedAmount uint64,
) error {
	if offer.IsFilled() {
		return s.deleteOffer(ctx, offer.ID)
	}

	if err := s.repoManager.OfferRepository().UpdateOffer(
		ctx, offer.ID, func(o *domain.Offer) (*domain.Offer, error) {
			o.RemainingAmount = offer.RemainingAmount
			return o, nil
		},
	); err != nil {
		return err
	}
	return s.repoManager.EscrowRepository().UpdateEntry(
		ctx, offer.ID, func(e *domain.EscrowEntry) (*domain.EscrowEntry, error) {
			e.Amount -= releasedAmount
			return e, nil
		},
	)
}

func (s *exchangeService) deleteOffer(ctx context.Context, offerID uint64) error {
	if err := s.repoManager.OfferRepository().DeleteOffer(ctx, offerID); err != nil {
		return err
	}
	return s.repoManager.EscrowRepository().DeleteEntry(ctx, offerID)
}

// reinstateOffer undoes the removal of an offer whose refund failed.
func (s *exchangeService) reinstateOffer(
	ctx context.Context, offer *domain.Offer, entry *domain.EscrowEntry,
) {
	if err := s.repoManager.OfferRepository().AddOffer(ctx, offer); err != nil {
		log.WithError(err).Errorf("failed to reinstate offer %d", offer.ID)
	}
	if err := s.repoManager.EscrowRepository().AddEntry(ctx, entry); err != nil {
		log.WithError(err).Errorf("failed to reinstate escrow entry of offer %d", offer.ID)
	}
}

// rollbackFill undoes the committed decrement of a fill whose settlement
// failed.
func (s *exchangeService) rollbackFill(
	ctx context.Context,
	previous, updated *domain.Offer, entry *domain.EscrowEntry,
) {
	if updated.IsFilled() {
		s.reinstateOffer(ctx, previous, entry)
		return
	}

	if err := s.repoManager.OfferRepository().UpdateOffer(
		ctx, previous.ID, func(o *domain.Offer) (*domain.Offer, error) {
			o.RemainingAmount = previous.RemainingAmount
			return o, nil
		},
	); err != nil {
		log.WithError(err).Errorf("failed to roll back fill of offer %d", previous.ID)
	}
	if err := s.repoManager.EscrowRepository().UpdateEntry(
		ctx, previous.ID, func(e *domain.EscrowEntry) (*domain.EscrowEntry, error) {
			e.Amount = entry.Amount
			return e, nil
		},
	); err != nil {
		log.WithError(err).Errorf("failed to roll back escrow entry of offer %d", previous.ID)
	}
}

// refundEscrow returns funds pulled into custody by an operation that failed
// to commit.
func (s *exchangeService) refundEscrow(
	ctx context.Context, token domain.TokenRef, owner string, amount uint64,
) {
	if err := s.tokenGateway.Transfer(ctx, token, owner, amount); err != nil {
		log.WithError(err).Errorf(
			"failed to refund %d of token %s to %s", amount, token.AccountID, owner,
		)
	}
}

func (s *exchangeService) lockExchange(exchangeID uint64) func() {
	s.locksLock.Lock()
	lock, ok := s.locks[exchangeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[exchangeID] = lock
	}
	s.locksLock.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *exchangeService) publish(topic string, event interface{}) {
	message, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warnf("failed to serialize event for topic %s", topic)
		return
	}
	if err := s.pubsub.Publish(topic, string(message)); err != nil {
		log.WithError(err).Warnf("failed to publish event for topic %s", topic)
	}
}
