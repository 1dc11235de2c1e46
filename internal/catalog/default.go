package catalog

import "viagens/internal/core"

// Default returns the built-in catalog for the South Africa trip.
// Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Flights: InternationalFlights{
			Outbound: FlightLeg{
				Route:     "GRU ➔ JNB",
				Airline:   "TAAG Angola Airlines",
				Flight:    "DT 748 + DT 577",
				Departure: "25/01 - 18:05",
				Arrival:   "26/01 - 14:40",
				Layover:   "Luanda (LAD) - 3h 15m",
				Status:    "Confirmado",
				Details:   "Conexão em Luanda com troca de aeronave.",
			},
			Return: FlightLeg{
				Route:     "JNB ➔ GRU",
				Airline:   "TAAG Angola Airlines",
				Flight:    "DT 576 + DT 747",
				Departure: "06/02 - 00:45",
				Arrival:   "06/02 - 15:05",
				Layover:   "Luanda (LAD) - 7h 05m",
				Status:    "Confirmado",
				Details:   "Retorno diurno no trecho final para o Brasil.",
			},
		},
		Ticket: TicketDetails{
			BookingID:   "862508329300",
			CheckInCode: "BJDTCL",
			Passengers: []Passenger{
				{Name: "André Victor Brito de Andrade", IDDoc: "12666966798", ETicket: "1186055770451"},
				{Name: "Marcelly Bispo Pereira da Silva", IDDoc: "14019271739", ETicket: "1186055770450"},
			},
		},
		Regions: []core.Region{
			{
				ID:            "jnb_melville",
				Name:          "Richmond / Melville",
				City:          "Joanesburgo",
				Profile:       "Zona Boêmia & Tranquila",
				RioEquivalent: "Urca / Santa Teresa",
				Safety:        "Alta",
				Description:   "Vilas residenciais, cafés charmosos e livrarias. Ótimo para caminhar de dia.",
			},
			{
				ID:            "jnb_sandton",
				Name:          "Sandton",
				City:          "Joanesburgo",
				Profile:       "Zona Rica & Financeira",
				RioEquivalent: "Leblon / Barra",
				Safety:        "Média-Alta",
				Description:   "O centro financeiro. Shoppings de luxo, hotéis de rede e hub do Gautrain.",
			},
			{
				ID:            "cpt_seapoint",
				Name:          "Sea Point",
				City:          "Cidade do Cabo",
				Profile:       "Zona Turística & Orla",
				RioEquivalent: "Ipanema / Copacabana",
				Safety:        "Alta",
				Description:   "Melhor calçadão para caminhadas. Próximo a tudo via Uber.",
			},
		},
		Accommodations: []core.LodgingOption{
			{
				ID:            "jnb_garden_cottage",
				RegionID:      "jnb_melville",
				Name:          "Garden Cottage in Richmond nr Melville",
				Preferred:     true,
				Rating:        9.7,
				PricePerNight: 146.25,
				PriceTotal:    585.00,
				Period:        "02/02 a 06/02",
				Nights:        4,
				Link:          "https://www.booking.com/hotel/za/garden-cottage-in-richmond-nr-melville.pt-br.html",
				Location:      "16 Chatou Rd, Richmond",
				Amenities:     []string{"Piscina Privativa", "Cozinha Completa", "Jardim", "Wi-Fi Nota 10"},
				Distances:     []core.Distance{{Place: "7th Street Melville", Dist: "1.2 km"}},
				Breakfast:     "Incluso (Genius)",
				Cancellation:  "Grátis até 28/01",
			},
			{
				ID:            "jnb_luxury_sandton",
				RegionID:      "jnb_sandton",
				Name:          "The Capital Sandton",
				Rating:        8.5,
				PricePerNight: 450.00,
				PriceTotal:    1800.00,
				Period:        "02/02 a 06/02",
				Nights:        4,
				Link:          "https://www.booking.com/hotel/za/the-capital-sandton.pt-br.html",
				Location:      "Sandton Central",
				Amenities:     []string{"Ginásio", "Piscina", "Serviço de Quarto"},
				Distances:     []core.Distance{{Place: "Sandton City Mall", Dist: "600m"}},
				Breakfast:     "Pago à parte",
				Cancellation:  "Não reembolsável",
			},
			{
				ID:            "cpt_home_suite",
				RegionID:      "cpt_seapoint",
				Name:          "Home Suite Hotels Sea Point",
				Rating:        8.9,
				PricePerNight: 350.00,
				PriceTotal:    2450.00,
				Period:        "26/01 a 02/02",
				Nights:        7,
				Link:          "https://www.booking.com/hotel/za/home-suite-hotels-sea-point.pt-br.html",
				Location:      "50 London Rd, Sea Point",
				Amenities:     []string{"Rooftop Pool", "Nespresso", "Segurança 24h"},
				Distances:     []core.Distance{{Place: "Orla Sea Point", Dist: "200m"}},
				Breakfast:     "Incluso",
				Cancellation:  "Grátis 7 dias antes",
			},
		},
		Bus: BusLogistics{
			ViaLeme: []BusLeg{
				{ID: "l1", From: "RJ", To: "Leme", Time: "00:05", Price: 93, Date: "22/01"},
				{ID: "l2", From: "Leme", To: "GRU", Time: "08:30", Price: 119, Date: "25/01"},
			},
			DirectSP: []BusLeg{
				{ID: "d1", From: "RJ (Novo Rio)", To: "Tietê", Time: "06:15", Price: 124, Date: "25/01"},
				{ID: "d2", From: "Tietê", To: "GRU", Time: "14:10", Price: 32, Date: "25/01"},
			},
			Return: []BusLeg{
				{ID: "r1", From: "GRU", To: "Tietê", Time: "16:20", Price: 41, Date: "06/02"},
				{ID: "r2", From: "Tietê", To: "RJ", Time: "18:05", Price: 93, Date: "06/02"},
			},
		},
		Timeline: []TimelineStep{
			{Time: "14:40", Task: "Pouso DT 577 em JNB"},
			{Time: "15:40", Task: "Imigração & Coleta de Malas", Warning: true},
			{Time: "17:15", Task: "Check-in South African Airways"},
			{Time: "18:45", Task: "Decolagem para CPT", Highlight: true},
		},
		RegionalFlight: FlightDeal{
			Company:        "South African Airways",
			RoundTripPrice: 872.00,
			Outbound:       FlightTimes{Date: "26/01", Time: "18:45", Arrival: "21:00"},
			Return:         FlightTimes{Date: "02/02", Time: "12:20", Arrival: "14:20"},
		},
		Tips: []Tip{
			{Title: "Transporte", Icon: "🚗", Text: "Use Uber Black em JNB. Gautrain é ótimo mas fecha às 20:30."},
			{Title: "Bariátrica", Icon: "🍱", Text: "Biltong (carne seca) é 50% proteína. Perfeito para o pós."},
			{Title: "Internet", Icon: "🌐", Text: "Vodacom ou MTN têm as melhores coberturas."},
			{Title: "Segurança", Icon: "🛡️", Text: "Celular sempre guardado. Use o Uber dentro dos locais."},
		},
	}
}
