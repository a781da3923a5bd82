package clients

const USER_AGENT = "stockpulse-client/1.0 (+https://github.com/spacesedan/stockpulse)"
