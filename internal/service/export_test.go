package service

// Exchange runs the streaming part of HandleNewMessage directly, so tests can
// change the store between resolving a thread and starting its exchange.
var Exchange = (*ChatService).exchange
