package blizzard

// DTOs raw de la Game Data API. Solo se usan dentro de este paquete;
// la conversión a domain entities vive en mapping.go.

// tokenResponse es la respuesta del endpoint OAuth2 de tokens.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// realmSearchResponse es la respuesta de GET /data/wow/search/connected-realm.
type realmSearchResponse struct {
	Results []realmSearchResult `json:"results"`
}

// realmSearchResult envuelve cada candidato del search en un objeto data.
type realmSearchResult struct {
	Data connectedRealmData `json:"data"`
}

// connectedRealmData es el connected realm con sus realms constituyentes.
type connectedRealmData struct {
	ID     int64       `json:"id"`
	Realms []realmData `json:"realms"`
}

type realmData struct {
	Slug string        `json:"slug"`
	Name localizedName `json:"name"`
}

// localizedName: el search no aplica el parámetro locale, así que los nombres
// llegan como mapa locale→string. Solo extraemos en_US.
type localizedName struct {
	EnUS string `json:"en_US"`
}

// auctionsResponse es la respuesta de GET /data/wow/connected-realm/{id}/auctions.
type auctionsResponse struct {
	Auctions []auctionListing `json:"auctions"`
}

// auctionListing es un listing crudo. unit_price y buyout son mutuamente
// opcionales: los commodities llevan unit_price, los stacks normales buyout
// (y los bid-only ninguno de los dos).
type auctionListing struct {
	ID        int64       `json:"id"`
	Item      auctionItem `json:"item"`
	Quantity  int64       `json:"quantity"`
	UnitPrice int64       `json:"unit_price"`
	Buyout    int64       `json:"buyout"`
	Bid       int64       `json:"bid"`
	TimeLeft  string      `json:"time_left"`
}

type auctionItem struct {
	ID int64 `json:"id"`
}

// itemResponse es la respuesta de GET /data/wow/item/{id}. Con locale fijo en
// el request, name llega como string plano.
type itemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
