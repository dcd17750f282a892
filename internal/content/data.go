package content

var services = []Service{
	{ID: "buy", Icon: "network", Title: "Buy IPv4 Blocks",
		Description: "Acquire the address space you need, from small /24 blocks to large /16 blocks, through our verified listings."},
	{ID: "sell", Icon: "dollar-sign", Title: "Sell IPv4 Addresses",
		Description: "Monetize your unused or legacy IPv4 assets by connecting with qualified buyers on our global platform."},
	{ID: "transfer", Icon: "clock", Title: "Trusted IPv4 Transfers",
		Description: "Secure transfers between vetted buyers and sellers with end-to-end IP validation and protection."},
	{ID: "rir", Icon: "file-text", Title: "RIR Transfer Support",
		Description: "Legal and technical support for transfer processes within ARIN, RIPE, APNIC, LACNIC and AFRINIC."},
	{ID: "consulting", Icon: "award", Title: "IP Strategy Consulting",
		Description: "Guidance on valuation, address management and planning for the IPv6 transition."},
	{ID: "escrow", Icon: "lock", Title: "Escrow & Payment Services",
		Description: "Funds and assets are held in escrow until the transfer is confirmed by both parties."},
}

var process = []ProcessStep{
	{Step: 1, Icon: "file-text", Title: "Submit Your Request",
		Description: "Tell us whether you are buying, selling or leasing, with the block size and region you need."},
	{Step: 2, Icon: "search", Title: "Expert Review & Vetting",
		Description: "We vet all parties and address blocks so they are clean, legitimate and meet RIR policy."},
	{Step: 3, Icon: "shield", Title: "Secure Transaction",
		Description: "We draft the purchase agreement and hold funds in escrow while the seller starts the RIR transfer."},
	{Step: 4, Icon: "check-circle", Title: "RIR Approval & Payout",
		Description: "Once the RIR approves and the buyer confirms receipt, funds are released to the seller."},
}

var team = []TeamMember{
	{ID: "tm-1", Name: "Priya Raman", Role: "Chief Executive Officer",
		Bio:    "Fifteen years in carrier networking and address policy; previously ran numbering operations at a regional ISP.",
		Avatar: "/images/team/priya.jpg"},
	{ID: "tm-2", Name: "Daniel Okafor", Role: "Head of Brokerage",
		Bio:    "Has closed more than four hundred IPv4 transfers across all five RIR regions.",
		Avatar: "/images/team/daniel.jpg"},
	{ID: "tm-3", Name: "Mei Lin", Role: "RIR Compliance Lead",
		Bio:    "Former APNIC hostmaster who now guides clients through justification and transfer paperwork.",
		Avatar: "/images/team/mei.jpg"},
	{ID: "tm-4", Name: "Tomás Herrera", Role: "Network Engineer",
		Bio:    "Validates routing history and reputation for every block before it is listed.",
		Avatar: "/images/team/tomas.jpg"},
}

var statistics = []Statistic{
	{ID: "st-1", Name: "Addresses Transferred", Value: 4.2, Unit: "M",
		Description: "IPv4 addresses moved between organisations through our platform."},
	{ID: "st-2", Name: "Completed Transfers", Value: 1250, Unit: "+",
		Description: "Successful RIR-approved transfers since launch."},
	{ID: "st-3", Name: "Countries Served", Value: 68, Unit: "",
		Description: "Buyers and sellers we have worked with worldwide."},
	{ID: "st-4", Name: "Average Close Time", Value: 21, Unit: "days",
		Description: "From signed agreement to RIR approval."},
}

var testimonials = []Testimonial{
	{ID: "ts-1",
		Text:       "We needed a /22 for a new data centre on a tight deadline. The team handled the ARIN paperwork end to end.",
		ClientName: "Sarah Whitfield", ClientRole: "Network Director", ClientCompany: "Northbridge Hosting",
		ClientAvatar: "/images/clients/sarah.jpg"},
	{ID: "ts-2",
		Text:       "Selling our legacy space was far simpler than expected, and escrow made the payment side painless.",
		ClientName: "Rajesh Iyer", ClientRole: "CTO", ClientCompany: "Kaveri Telecom",
		ClientAvatar: "/images/clients/rajesh.jpg"},
	{ID: "ts-3",
		Text:       "Clear pricing and honest advice on when IPv6 would serve us better. We will use them again.",
		ClientName: "Lena Vogel", ClientRole: "Infrastructure Manager", ClientCompany: "Alpenwerk GmbH",
		ClientAvatar: "/images/clients/lena.jpg"},
}

// 刻意不照 Order 排列，由 Milestones() 負責排序
var milestones = []Milestone{
	{ID: "ms-3", Year: "2019", Title: "All Five RIRs",
		Description: "Completed our first transfers in LACNIC and AFRINIC regions.", Order: 3},
	{ID: "ms-1", Year: "2014", Title: "Founded",
		Description: "Started as a two-person brokerage helping ISPs source /24 blocks.", Order: 1},
	{ID: "ms-2", Year: "2016", Title: "Escrow Service",
		Description: "Launched escrow to protect both sides of every transaction.", Order: 2},
	{ID: "ms-4", Year: "2022", Title: "Online Portal",
		Description: "Customers can now submit and track IPv4 requests online.", Order: 4},
}
